package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vcollos/camara/internal/domain"
)

// InconsistencyMarker prefixes the complement of operating-cost rows whose narrative talks
// about monthly fees. It flags the row for review; classification is left as computed.
const InconsistencyMarker = "*** Lançamento Inconsistente, verifique"

const complementSeparator = " | "

// Complement renders "entity | receipt-type description | narrative | tipo".
func Complement(r domain.SourceRecord) string {
	return strings.Join([]string{r.NomeSingular, r.DescricaoTipoRecebimento, r.Descricao, r.Tipo}, complementSeparator)
}

// IsInconsistent reports whether r is an operating-cost passthrough that mentions monthly fees.
func IsInconsistent(r domain.SourceRecord) bool {
	return r.CodigoTipoRecebimento == int(domain.ReceiptOperatingCost) &&
		strings.TrimSpace(r.DescricaoTipoRecebimento) == domain.ReceiptOperatingCost.Description() &&
		strings.Contains(strings.ToLower(r.Descricao), "mensalidade")
}

// Annotate returns the complement for r, prefixed with InconsistencyMarker when needed.
func Annotate(r domain.SourceRecord, complement string) string {
	if IsInconsistent(r) {
		return InconsistencyMarker + complementSeparator + complement
	}
	return complement
}

// Assemble builds the primary posting for r.
func Assemble(r domain.SourceRecord, c Classification, amount decimal.Decimal, date time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		Debito:      c.Debit,
		Credito:     c.Credit,
		Historico:   c.History,
		Data:        date,
		Valor:       amount,
		Complemento: Annotate(r, Complement(r)),
		Source:      r,
	}
}
