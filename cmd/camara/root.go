package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcollos/camara/internal/api/responses"
	"github.com/vcollos/camara/internal/config"
	"github.com/vcollos/camara/internal/core/converter"
)

// app carrega o que os subcomandos compartilham depois da inicialização.
type app struct {
	cfgFile string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "camara",
		Short: "Conversor da câmara de compensação para lançamentos contábeis",
		Long: `Converte os arquivos da câmara de compensação (CSV, XLS ou XLSX) em
lançamentos de partida dobrada no layout de importação contábil e gera os
relatórios por tipo de recebimento.

Exemplos:
  camara convert janeiro.csv fevereiro.xlsx --out ./saida
  camara report janeiro.csv --out relatorios.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "arquivo de configuração YAML (padrão ./camara.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log detalhado (nível debug)")

	root.AddCommand(newConvertCmd(a), newReportCmd(a), newVersionCmd())
	return root
}

func (a *app) init() error {
	if a.cfgFile != "" {
		if err := os.Setenv("CAMARA_CONFIG", a.cfgFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuração: %w", err)
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := responses.InitLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// service monta o serviço de conversão a partir da configuração carregada.
func (a *app) service(extended bool, encoding string) converter.Service {
	refDate, _ := a.cfg.ReferenceDate()
	if encoding == "" {
		encoding = a.cfg.Export.Encoding
	}
	return converter.NewService(a.logger, converter.Options{
		Encoding:      encoding,
		Separator:     a.cfg.SeparatorRune(),
		Workers:       a.cfg.Batch.Workers,
		ReferenceDate: refDate,
		Extended:      extended || a.cfg.Export.Extended,
	})
}
