package ledger

import (
	"strconv"
	"strings"

	"github.com/vcollos/camara/internal/domain"
)

// SynchronizeCodes enforces code/description consistency in place. The code is the source
// of truth: a valid code overwrites a mismatching description; an invalid code is derived
// from an exact canonical description; otherwise both fall back to "Outros" (6). Every
// correction is returned as a diagnostic.
func SynchronizeCodes(records []domain.SourceRecord) Diagnostics {
	var diags Diagnostics
	for i := range records {
		r := &records[i]
		code := domain.ReceiptType(r.CodigoTipoRecebimento)
		desc := strings.TrimSpace(r.DescricaoTipoRecebimento)

		if code.Valid() {
			if want := code.Description(); desc != want {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Kind:     KindSync,
					Row:      r.Row,
					Entity:   r.NomeSingular,
					Field:    domain.ColDescricaoTipoRecebimento,
					Old:      r.DescricaoTipoRecebimento,
					New:      want,
					Reason:   "descrição corrigida a partir do código " + strconv.Itoa(int(code)),
				})
				r.DescricaoTipoRecebimento = want
			}
			continue
		}

		if derived, ok := domain.ReceiptTypeFromDescription(desc); ok {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     KindSync,
				Row:      r.Row,
				Entity:   r.NomeSingular,
				Field:    domain.ColCodigoTipoRecebimento,
				Old:      strconv.Itoa(r.CodigoTipoRecebimento),
				New:      strconv.Itoa(int(derived)),
				Reason:   "código corrigido a partir da descrição " + strconv.Quote(desc),
			})
			r.CodigoTipoRecebimento = int(derived)
			continue
		}

		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Kind:     KindSync,
			Row:      r.Row,
			Entity:   r.NomeSingular,
			Field:    domain.ColCodigoTipoRecebimento,
			Old:      strconv.Itoa(r.CodigoTipoRecebimento) + " / " + r.DescricaoTipoRecebimento,
			New:      strconv.Itoa(int(domain.ReceiptOther)) + " / " + domain.ReceiptOther.Description(),
			Reason:   "código e descrição inválidos, definido como Outros",
		})
		r.CodigoTipoRecebimento = int(domain.ReceiptOther)
		r.DescricaoTipoRecebimento = domain.ReceiptOther.Description()
	}
	return diags
}
