package ledger

import (
	"regexp"
	"time"

	"github.com/vcollos/camara/internal/domain"
)

// WithholdingSuffix closes the complement of every synthetic IRRF posting. It is the only
// signal used to tell those postings apart from primary ones.
const WithholdingSuffix = complementSeparator + "IRRF"

// Fixed IRRF accounts.
const (
	withholdingLiability         domain.Account = 23476
	withholdingPayableHistory    domain.Account = 2341
	withholdingReceivable        domain.Account = 15456
	withholdingReceivableHistory domain.Account = 22
)

var withholdingPattern = regexp.MustCompile(`(?i)\|\s*IRRF\s*$`)

// IsWithholdingRow reports whether e is a synthetic IRRF posting.
func IsWithholdingRow(e domain.LedgerEntry) bool {
	return IsWithholdingComplement(e.Complemento)
}

// IsWithholdingComplement applies the IRRF suffix match to a raw complement string.
func IsWithholdingComplement(complement string) bool {
	return withholdingPattern.MatchString(complement)
}

// SynthesizeWithholding emits one reversing posting per record whose IRRF is positive.
// primaries must be index-aligned with records. Output keeps source order.
func SynthesizeWithholding(records []domain.SourceRecord, primaries []domain.LedgerEntry, date time.Time) ([]domain.LedgerEntry, Diagnostics) {
	var (
		out   []domain.LedgerEntry
		diags Diagnostics
	)
	for i, r := range records {
		amount, err := Normalize(r.IRRF)
		if err != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     KindNormalization,
				Row:      r.Row,
				Entity:   r.NomeSingular,
				Field:    domain.ColIRRF,
				Old:      r.IRRF,
				New:      "0",
				Reason:   err.Error(),
			})
			continue
		}
		if !amount.IsPositive() {
			continue
		}

		entry := domain.LedgerEntry{
			Data:        date,
			Valor:       amount,
			Complemento: Complement(r) + WithholdingSuffix,
			Source:      r,
		}
		switch r.Direction() {
		case domain.DirectionPayable:
			entry.Debito = primaries[i].Credito
			entry.Credito = withholdingLiability
			entry.Historico = withholdingPayableHistory
		case domain.DirectionReceivable:
			entry.Debito = withholdingReceivable
			entry.Credito = primaries[i].Debito
			entry.Historico = withholdingReceivableHistory
		default:
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     KindWithholding,
				Row:      r.Row,
				Entity:   r.NomeSingular,
				Field:    domain.ColTipo,
				Old:      r.Tipo,
				Reason:   "IRRF ignorado: tipo de transação desconhecido",
			})
			continue
		}
		out = append(out, entry)
	}
	return out, diags
}
