package domain

// Canonical source columns.
const (
	ColTipo                     = "Tipo"
	ColCodigoSingular           = "CodigoSingular"
	ColNomeSingular             = "NomeSingular"
	ColTipoSingular             = "TipoSingular"
	ColCodigoTipoRecebimento    = "CodigoTipoRecebimento"
	ColDescricaoTipoRecebimento = "DescricaoTipoRecebimento"
	ColValorBruto               = "ValorBruto"
	ColIRRF                     = "IRRF"
	ColDescricao                = "Descricao"
)

// Export columns.
const (
	ColDebito      = "Debito"
	ColCredito     = "Credito"
	ColHistorico   = "Historico"
	ColData        = "DATA"
	ColValor       = "valor"
	ColComplemento = "complemento"
)

// RequiredColumns lists the nine canonical source columns in export order.
var RequiredColumns = []string{
	ColTipo, ColCodigoSingular, ColNomeSingular, ColTipoSingular,
	ColCodigoTipoRecebimento, ColDescricaoTipoRecebimento,
	ColValorBruto, ColIRRF, ColDescricao,
}

// ExportColumns lists the six ledger posting columns.
var ExportColumns = []string{ColDebito, ColCredito, ColHistorico, ColData, ColValor, ColComplemento}

// PreservedColumns are the source columns carried next to each posting for downstream filtering.
var PreservedColumns = []string{
	ColTipoSingular, ColCodigoTipoRecebimento, ColTipo, ColNomeSingular,
	ColDescricaoTipoRecebimento, ColDescricao, ColValorBruto, ColIRRF,
}

// Table is a loaded sheet: named columns and string cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the column with the exact given name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column with the exact given name exists.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Value returns the cell at row for the named column, or "" when either is absent.
func (t *Table) Value(row int, name string) string {
	idx := t.Index(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// SetColumn overwrites the named column, appending it when absent.
func (t *Table) SetColumn(name string, value func(row int) string) {
	idx := t.Index(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		idx = len(t.Columns) - 1
	}
	for i := range t.Rows {
		for len(t.Rows[i]) <= idx {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.Rows[i][idx] = value(i)
	}
}

// Rename renames a column in place. It is a no-op when from does not exist.
func (t *Table) Rename(from, to string) {
	if idx := t.Index(from); idx >= 0 {
		t.Columns[idx] = to
	}
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}
