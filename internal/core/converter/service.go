package converter

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vcollos/camara/internal/core/ledger"
	"github.com/vcollos/camara/internal/domain"
)

// Service define a interface para os serviços de conversão de arquivos da câmara de compensação.
type Service interface {
	LoadTable(file io.Reader, filename string) (*domain.Table, error)
	ProcessCamaraFile(file io.Reader, filename string) (*FileResult, error)
	ProcessBatch(ctx context.Context, files []File) (*BatchResult, error)
	ExportCSV(entries []domain.LedgerEntry, extended bool) ([]byte, error)
	WriteCSV(t *domain.Table) ([]byte, error)
	Charset() string
}

// Options configura o serviço.
type Options struct {
	// Encoding da exportação: EncodingUTF8 ou EncodingWindows1252.
	Encoding  string
	Separator rune
	// Workers limita quantos arquivos de um lote são processados ao mesmo tempo.
	Workers int
	// ReferenceDate substitui a data padrão (último dia do mês anterior) quando não for zero.
	ReferenceDate time.Time
	// Extended inclui as colunas de origem no CSV gerado.
	Extended bool
}

// DefaultOptions retorna as opções usadas quando nada é configurado.
func DefaultOptions() Options {
	return Options{Encoding: EncodingUTF8, Separator: ';', Workers: 4}
}

type service struct {
	logger *zap.Logger
	engine *ledger.Engine
	opts   Options
}

// NewService cria uma nova instância do serviço de conversão.
func NewService(logger *zap.Logger, opts Options) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.Encoding == "" {
		opts.Encoding = def.Encoding
	}
	if opts.Separator == 0 {
		opts.Separator = def.Separator
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	return &service{
		logger: logger,
		engine: ledger.New(ledger.WithReferenceDate(opts.ReferenceDate)),
		opts:   opts,
	}
}

// FileResult é o resultado da conversão de um arquivo.
type FileResult struct {
	RunID    string         `json:"run_id"`
	Filename string         `json:"filename"`
	Result   *ledger.Result `json:"result"`
	CSV      []byte         `json:"-"`
}

// LoadTable lê o arquivo para uma tabela sem transformá-lo.
func (svc *service) LoadTable(file io.Reader, filename string) (*domain.Table, error) {
	return LoadTable(file, filename)
}

// ProcessCamaraFile carrega, transforma e exporta um arquivo da câmara.
func (svc *service) ProcessCamaraFile(file io.Reader, filename string) (*FileResult, error) {
	return svc.process(uuid.NewString(), file, filename)
}

func (svc *service) process(runID string, file io.Reader, filename string) (*FileResult, error) {
	log := svc.logger.With(zap.String("run_id", runID), zap.String("file", filename))

	table, err := LoadTable(file, filename)
	if err != nil {
		log.Error("falha ao carregar arquivo", zap.Error(err))
		return nil, err
	}

	res, err := svc.engine.Transform(table)
	if err != nil {
		log.Error("formato não reconhecido", zap.Error(err))
		return nil, fmt.Errorf("erro ao processar %s: %w", filename, err)
	}
	logDiagnostics(log, res.Diagnostics)

	out, err := svc.ExportCSV(res.Entries, svc.opts.Extended)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar CSV final: %w", err)
	}

	log.Info("arquivo convertido",
		zap.String("format", string(res.Detection.Format)),
		zap.Int("records", len(res.Records)),
		zap.Int("entries", len(res.Entries)),
		zap.Int("irrf", len(res.Withholding())),
		zap.Int("warnings", res.Diagnostics.Count(ledger.SeverityWarning)),
		zap.Int("critical", res.Diagnostics.Count(ledger.SeverityCritical)),
	)
	return &FileResult{RunID: runID, Filename: filename, Result: res, CSV: out}, nil
}

func logDiagnostics(log *zap.Logger, diags ledger.Diagnostics) {
	for _, d := range diags {
		fields := []zap.Field{
			zap.String("kind", string(d.Kind)),
			zap.Int("row", d.Row),
			zap.String("entity", d.Entity),
			zap.String("field", d.Field),
			zap.String("old", d.Old),
			zap.String("new", d.New),
		}
		switch d.Severity {
		case ledger.SeverityCritical:
			log.Error(d.Reason, fields...)
		case ledger.SeverityWarning:
			log.Warn(d.Reason, fields...)
		default:
			log.Info(d.Reason, fields...)
		}
	}
}
