package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vcollos/camara/internal/core/converter"
	"github.com/vcollos/camara/internal/core/ledger"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		outDir   string
		extended bool
		encoding string
	)
	cmd := &cobra.Command{
		Use:   "convert <arquivo>...",
		Short: "Converte arquivos da câmara em CSV de lançamentos",
		Long: `Processa os arquivos em paralelo e grava um <nome>_lancamentos.csv por
arquivo convertido. Arquivos com formato não reconhecido são listados no
final e o comando termina com erro, mas os demais são gravados.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(args)
			if err != nil {
				return err
			}
			svc := a.service(extended, encoding)
			batch, err := svc.ProcessBatch(cmd.Context(), files)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, fr := range batch.Processed {
				target := filepath.Join(outDir, outputName(fr.Filename, "_lancamentos.csv"))
				if err := os.WriteFile(target, fr.CSV, 0o644); err != nil {
					return fmt.Errorf("gravar %s: %w", target, err)
				}
				res := fr.Result
				fmt.Fprintf(out, "%s → %s (%d lançamentos, %d IRRF, %d avisos, %d críticos)\n",
					fr.Filename, target, len(res.Entries), len(res.Withholding()),
					res.Diagnostics.Count(ledger.SeverityWarning), res.Diagnostics.Count(ledger.SeverityCritical))
			}
			for _, fe := range batch.Errored {
				fmt.Fprintf(out, "%s: %s\n", fe.Filename, fe.Reason)
			}
			if len(batch.Errored) > 0 {
				return fmt.Errorf("%d de %d arquivo(s) não convertido(s)", len(batch.Errored), len(files))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "diretório de saída")
	cmd.Flags().BoolVar(&extended, "extended", false, "inclui as colunas de origem no CSV")
	cmd.Flags().StringVar(&encoding, "encoding", "", "codificação da saída (utf-8 ou windows-1252)")
	return cmd
}

func readFiles(paths []string) ([]converter.File, error) {
	files := make([]converter.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, converter.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

// outputName troca a extensão do arquivo de origem pelo sufixo informado.
func outputName(filename, suffix string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + suffix
}
