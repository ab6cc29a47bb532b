package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/vcollos/camara/internal/domain"
)

// Records builds one SourceRecord per row of a canonical table (as returned by DetectSchema).
// A non-numeric CodigoTipoRecebimento is kept as 0 so that SynchronizeCodes can still
// resolve it from the description.
func Records(t *domain.Table) ([]domain.SourceRecord, Diagnostics) {
	var diags Diagnostics
	records := make([]domain.SourceRecord, 0, len(t.Rows))
	for i := range t.Rows {
		r := domain.SourceRecord{
			Row:                      i + 1,
			Tipo:                     t.Value(i, domain.ColTipo),
			NomeSingular:             t.Value(i, domain.ColNomeSingular),
			TipoSingular:             t.Value(i, domain.ColTipoSingular),
			DescricaoTipoRecebimento: t.Value(i, domain.ColDescricaoTipoRecebimento),
			ValorBruto:               t.Value(i, domain.ColValorBruto),
			IRRF:                     t.Value(i, domain.ColIRRF),
			Descricao:                t.Value(i, domain.ColDescricao),
		}

		rawSingular := t.Value(i, domain.ColCodigoSingular)
		if code, ok := parseCode(rawSingular); ok {
			r.CodigoSingular = code
		} else if strings.TrimSpace(rawSingular) != "" {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     KindNormalization,
				Row:      r.Row,
				Entity:   r.NomeSingular,
				Field:    domain.ColCodigoSingular,
				Old:      rawSingular,
				New:      "0",
				Reason:   "código da singular não numérico",
			})
		}

		if code, ok := parseCode(t.Value(i, domain.ColCodigoTipoRecebimento)); ok {
			r.CodigoTipoRecebimento = code
		}
		records = append(records, r)
	}
	return records, diags
}

// parseCode reads an integer cell, accepting spreadsheet renderings such as "3.0".
func parseCode(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
