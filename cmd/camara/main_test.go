package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const camaraCSV = "Tipo;CodigoSingular;NomeSingular;TipoSingular;CodigoTipoRecebimento;DescricaoTipoRecebimento;ValorBruto;IRRF;Descricao\n" +
	"A pagar;10;X;Operadora;1;Repasse em Pré-pagamento;1.000,00;100,00;teste\n" +
	"A receber;20;Uniodonto Paulista;Prestadora;4;Fundo de Marketing;250,00;0;fundo\n"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CAMARA_CONFIG", "")
	t.Setenv("CAMARA_LEDGER_REFERENCE_DATE", "31/01/2025")
	t.Setenv("CAMARA_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestConvertCmd(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "janeiro.csv", camaraCSV)
	outDir := filepath.Join(dir, "saida")

	out, err := runCLI(t, "convert", in, "--out", outDir)
	require.NoError(t, err)
	require.Contains(t, out, "3 lançamentos, 1 IRRF")

	data, err := os.ReadFile(filepath.Join(outDir, "janeiro_lancamentos.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "31731;90918;2005;31/01/2025;1000,00;X | Repasse em Pré-pagamento | teste | A pagar", lines[1])
}

func TestConvertCmd_ReportsUnrecognizedFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "a.csv", camaraCSV)
	bad := writeInput(t, dir, "b.csv", "Data;Historico\n01/01/2025;x\n")

	out, err := runCLI(t, "convert", good, bad, "-o", dir)
	require.Error(t, err)
	require.Contains(t, out, "b.csv:")
	require.FileExists(t, filepath.Join(dir, "a_lancamentos.csv"))
	require.NoFileExists(t, filepath.Join(dir, "b_lancamentos.csv"))
}

func TestReportCmd_Workbook(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "janeiro.csv", camaraCSV)
	target := filepath.Join(dir, "rel.xlsx")

	out, err := runCLI(t, "report", in, "--out", target)
	require.NoError(t, err)
	require.Contains(t, out, "taxas_marketing")

	f, err := excelize.OpenFile(target)
	require.NoError(t, err)
	defer f.Close()
	require.Len(t, f.GetSheetList(), 9)
}

func TestReportCmd_JSON(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "janeiro.csv", camaraCSV)

	out, err := runCLI(t, "report", in, "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"pre_pagamento_operadoras"`)
	require.Contains(t, out, `"irrf"`)
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	require.Equal(t, "camara dev\n", out)
}
