package converter

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/vcollos/camara/internal/core/ledger"
	"github.com/vcollos/camara/internal/domain"
)

const camaraCSV = "Tipo;CodigoSingular;NomeSingular;TipoSingular;CodigoTipoRecebimento;DescricaoTipoRecebimento;ValorBruto;IRRF;Descricao\n" +
	"A pagar;10;X;Operadora;1;Repasse em Pré-pagamento;1.000,00;100,00;teste\n" +
	"A receber;20;Uniodonto Paulista;Prestadora;4;Fundo de Marketing;250,00;0;fundo\n"

func newTestService(opts Options) Service {
	opts.ReferenceDate = time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	return NewService(nil, opts)
}

func TestLoadTable_CSVUTF8WithBOM(t *testing.T) {
	t.Parallel()

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(camaraCSV)...)
	tbl, err := LoadTable(bytes.NewReader(data), "camara.csv")
	require.NoError(t, err)
	require.Equal(t, domain.RequiredColumns, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, "Repasse em Pré-pagamento", tbl.Value(0, domain.ColDescricaoTipoRecebimento))
}

func TestLoadTable_CSVWindows1252Comma(t *testing.T) {
	t.Parallel()

	text := "Tipo,NomeSingular,Descricao\n\n A pagar ,São Paulo,Manutenção\n"
	data, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	tbl, err := LoadTable(bytes.NewReader(data), "CAMARA.CSV")
	require.NoError(t, err)
	require.Equal(t, []string{"Tipo", "NomeSingular", "Descricao"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	require.Equal(t, "A pagar", tbl.Value(0, "Tipo"))
	require.Equal(t, "São Paulo", tbl.Value(0, "NomeSingular"))
	require.Equal(t, "Manutenção", tbl.Value(0, "Descricao"))
}

func TestLoadTable_PadsShortRows(t *testing.T) {
	t.Parallel()

	tbl, err := LoadTable(strings.NewReader("a;b;c\n1;2\n"), "x.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", ""}, tbl.Rows[0])
}

func TestLoadTable_RowWiderThanHeader(t *testing.T) {
	t.Parallel()

	tbl, err := LoadTable(strings.NewReader("a;b\n1;2;;\n"), "x.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, tbl.Rows[0])

	_, err = LoadTable(strings.NewReader("a;b\n1;2\n3;4;perdido\n"), "x.csv")
	require.ErrorIs(t, err, ErrRowTooWide)
	require.Contains(t, err.Error(), "linha 3")
}

func TestLoadTable_XLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	header := []any{"Tipo", "CodigoSingular", "NomeSingular", "TipoSingular", "CodigoTipoRecebimento", "DescricaoTipoRecebimento", "ValorBruto", "IRRF", "Descricao"}
	row := []any{"A pagar", "10", "X", "Operadora", "1", "Repasse em Pré-pagamento", "1.000,00", "0", "teste"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := LoadTable(bytes.NewReader(buf.Bytes()), "camara.xlsx")
	require.NoError(t, err)
	require.Equal(t, domain.RequiredColumns, tbl.Columns)
	require.Equal(t, "1.000,00", tbl.Value(0, domain.ColValorBruto))
}

func TestLoadTable_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadTable(strings.NewReader("a;b"), "camara.pdf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadTable(strings.NewReader("\n\n"), "vazio.csv")
	require.Error(t, err)

	_, err = LoadTable(strings.NewReader("not a workbook"), "camara.xlsx")
	require.Error(t, err)
}

func TestSniffSeparator(t *testing.T) {
	t.Parallel()

	require.Equal(t, ';', sniffSeparator("a;b;c\n1,5;2;3"))
	require.Equal(t, ',', sniffSeparator("a,b,c\n1;2;3"))
	require.Equal(t, ';', sniffSeparator("a;b,c"))
	require.Equal(t, ';', sniffSeparator("single"))
}

func TestSanitizeForCSV(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a b", sanitizeForCSV("  a b \n"))
	require.Equal(t, "ab", sanitizeForCSV("a\tb"))
	require.Equal(t, "linha1linha2", sanitizeForCSV("linha1\nlinha2"))
	require.Equal(t, "x y", sanitizeForCSV("x\x01y"))
	require.Equal(t, "", sanitizeForCSV(" \t "))
}

func TestProcessCamaraFile(t *testing.T) {
	t.Parallel()

	svc := newTestService(Options{})
	res, err := svc.ProcessCamaraFile(strings.NewReader(camaraCSV), "camara.csv")
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Equal(t, ledger.FormatCanonical, res.Result.Detection.Format)
	require.Len(t, res.Result.Entries, 3)

	lines := strings.Split(strings.TrimSpace(string(res.CSV)), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "Debito;Credito;Historico;data;valor;complemento", lines[0])
	require.Equal(t, "31731;90918;2005;31/01/2025;1000,00;X | Repasse em Pré-pagamento | teste | A pagar", lines[1])
	require.Equal(t, "84679;30071;228;31/01/2025;250,00;Uniodonto Paulista | Fundo de Marketing | fundo | A receber", lines[2])
	require.Equal(t, "90918;23476;2341;31/01/2025;100,00;X | Repasse em Pré-pagamento | teste | A pagar | IRRF", lines[3])
}

func TestProcessCamaraFile_Windows1252Extended(t *testing.T) {
	t.Parallel()

	svc := newTestService(Options{Encoding: EncodingWindows1252, Extended: true})
	res, err := svc.ProcessCamaraFile(strings.NewReader(camaraCSV), "camara.csv")
	require.NoError(t, err)

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(res.CSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(decoded)), "\n")
	require.True(t, strings.HasPrefix(lines[0], "Debito;Credito;Historico;data;valor;complemento;TipoSingular;CodigoTipoRecebimento"))
	require.Contains(t, lines[1], "Repasse em Pré-pagamento")
	require.False(t, bytes.Contains(res.CSV, []byte("é")), "output must not be UTF-8")
}

func TestProcessCamaraFile_UnrecognizedSchema(t *testing.T) {
	t.Parallel()

	svc := newTestService(Options{})
	_, err := svc.ProcessCamaraFile(strings.NewReader("Data;Historico\n01/01/2025;x\n"), "outro.csv")
	require.ErrorIs(t, err, ledger.ErrUnrecognizedSchema)
}

func TestProcessBatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(Options{Workers: 2})
	files := []File{
		{Name: "a.csv", Data: []byte(camaraCSV)},
		{Name: "b.csv", Data: []byte("Data;Historico\n01/01/2025;x\n")},
		{Name: "c.txt", Data: []byte(camaraCSV)},
		{Name: "d.csv", Data: []byte(camaraCSV)},
	}

	batch, err := svc.ProcessBatch(context.Background(), files)
	require.NoError(t, err)
	require.NotEmpty(t, batch.RunID)
	require.Len(t, batch.Processed, 2)
	require.Equal(t, "a.csv", batch.Processed[0].Filename)
	require.Equal(t, "d.csv", batch.Processed[1].Filename)
	require.Equal(t, batch.RunID, batch.Processed[0].RunID)

	require.Len(t, batch.Errored, 2)
	require.Equal(t, "b.csv", batch.Errored[0].Filename)
	require.Len(t, batch.Errored[0].Missing, len(domain.RequiredColumns))
	require.Equal(t, "c.txt", batch.Errored[1].Filename)
}

func TestProcessBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(Options{}).ProcessBatch(ctx, []File{{Name: "a.csv", Data: []byte(camaraCSV)}})
	require.ErrorIs(t, err, context.Canceled)
}
