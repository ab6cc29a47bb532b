package converter

import (
	"bytes"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vcollos/camara/internal/core/ledger"
)

// File is one input of a batch.
type File struct {
	Name string
	Data []byte
}

// FileError explica por que um arquivo do lote foi ignorado.
type FileError struct {
	Filename string   `json:"filename"`
	Reason   string   `json:"reason"`
	Missing  []string `json:"missing,omitempty"`
}

// BatchResult reúne os arquivos processados e os que falharam.
type BatchResult struct {
	RunID     string        `json:"run_id"`
	Processed []*FileResult `json:"processed"`
	Errored   []FileError   `json:"errored"`
}

// ProcessBatch converte os arquivos em paralelo, limitado por Options.Workers. A falha de
// um arquivo não interrompe os demais; só o cancelamento do contexto encerra o lote.
func (svc *service) ProcessBatch(ctx context.Context, files []File) (*BatchResult, error) {
	runID := uuid.NewString()
	results := make([]*FileResult, len(files))
	failures := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(svc.opts.Workers)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i], failures[i] = svc.process(runID, bytes.NewReader(f.Data), f.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{RunID: runID, Processed: []*FileResult{}, Errored: []FileError{}}
	for i, f := range files {
		if failures[i] != nil {
			fe := FileError{Filename: f.Name, Reason: failures[i].Error()}
			var schemaErr *ledger.SchemaError
			if errors.As(failures[i], &schemaErr) {
				fe.Missing = schemaErr.Missing
			}
			batch.Errored = append(batch.Errored, fe)
			continue
		}
		batch.Processed = append(batch.Processed, results[i])
	}

	svc.logger.Info("lote concluído",
		zap.String("run_id", runID),
		zap.Int("files", len(files)),
		zap.Int("processed", len(batch.Processed)),
		zap.Int("errored", len(batch.Errored)),
	)
	return batch, nil
}
