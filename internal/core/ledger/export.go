package ledger

import (
	"strconv"

	"github.com/vcollos/camara/internal/domain"
)

// ExportTable renders entries in the ledger import layout. With preserve set, the source
// columns listed in domain.PreservedColumns follow the six posting columns.
func ExportTable(entries []domain.LedgerEntry, preserve bool) *domain.Table {
	columns := append([]string(nil), domain.ExportColumns...)
	if preserve {
		columns = append(columns, domain.PreservedColumns...)
	}
	t := &domain.Table{Columns: columns, Rows: make([][]string, 0, len(entries))}
	for _, e := range entries {
		row := []string{
			e.Debito.String(),
			e.Credito.String(),
			e.Historico.String(),
			e.Data.Format(DateLayout),
			FormatAmount(e.Valor),
			e.Complemento,
		}
		if preserve {
			for _, c := range domain.PreservedColumns {
				row = append(row, sourceValue(e.Source, c))
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func sourceValue(r domain.SourceRecord, column string) string {
	switch column {
	case domain.ColTipo:
		return r.Tipo
	case domain.ColCodigoSingular:
		return strconv.Itoa(r.CodigoSingular)
	case domain.ColNomeSingular:
		return r.NomeSingular
	case domain.ColTipoSingular:
		return r.TipoSingular
	case domain.ColCodigoTipoRecebimento:
		return strconv.Itoa(r.CodigoTipoRecebimento)
	case domain.ColDescricaoTipoRecebimento:
		return r.DescricaoTipoRecebimento
	case domain.ColValorBruto:
		return r.ValorBruto
	case domain.ColIRRF:
		return r.IRRF
	case domain.ColDescricao:
		return r.Descricao
	}
	return ""
}
