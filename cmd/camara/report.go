package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vcollos/camara/internal/core/report"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		outPath string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "report <arquivo>",
		Short: "Gera a planilha de relatórios por tipo de recebimento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := a.service(false, "").ProcessCamaraFile(f, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			reports := report.Build(res.Result.Entries)
			summary := report.Summarize(res.Result.Entries)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"reports": reports, "irrf": summary})
			}

			if outPath == "" {
				outPath = outputName(filepath.Base(args[0]), "_relatorios.xlsx")
			}
			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := report.WriteWorkbook(out, reports, summary); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			for _, r := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %4d  %s\n", r.Name, r.Count, r.Total.StringFixed(2))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "relatórios gravados em %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "arquivo XLSX de saída (padrão <nome>_relatorios.xlsx)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "imprime relatórios e resumo de IRRF em JSON")
	return cmd
}
