package ledger

import (
	"fmt"
	"strconv"

	"github.com/vcollos/camara/internal/domain"
)

// CodeSnapshot is an immutable copy of the receipt-type codes as they entered classification.
type CodeSnapshot struct {
	codes []int
}

// SnapshotCodes copies the current codes of records.
func SnapshotCodes(records []domain.SourceRecord) CodeSnapshot {
	codes := make([]int, len(records))
	for i, r := range records {
		codes[i] = r.CodigoTipoRecebimento
	}
	return CodeSnapshot{codes: codes}
}

// Len returns the number of snapshotted rows.
func (s CodeSnapshot) Len() int { return len(s.codes) }

// Verify compares the live codes against the coerced snapshot. Every diverging row is reported
// as critical and restored to the snapshot value. stage names the pipeline point being checked.
func (s CodeSnapshot) Verify(records []domain.SourceRecord, stage string) Diagnostics {
	var diags Diagnostics
	if len(records) != len(s.codes) {
		diags = append(diags, Diagnostic{
			Severity: SeverityCritical,
			Kind:     KindConsistency,
			Reason:   fmt.Sprintf("%s: quantidade de registros alterada de %d para %d", stage, len(s.codes), len(records)),
		})
	}
	for i := range records {
		if i >= len(s.codes) {
			break
		}
		want := int(domain.CoerceReceiptType(s.codes[i]))
		got := records[i].CodigoTipoRecebimento
		if got == want {
			continue
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityCritical,
			Kind:     KindConsistency,
			Row:      records[i].Row,
			Entity:   records[i].NomeSingular,
			Field:    domain.ColCodigoTipoRecebimento,
			Old:      strconv.Itoa(want),
			New:      strconv.Itoa(got),
			Reason:   fmt.Sprintf("%s: código alterado sem autorização, valor original restaurado (descrição: %s)", stage, records[i].Descricao),
		})
		records[i].CodigoTipoRecebimento = want
	}
	return diags
}
