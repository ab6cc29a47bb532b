// Package report agrupa os lançamentos gerados em relatórios contábeis por tipo de recebimento.
package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vcollos/camara/internal/core/ledger"
	"github.com/vcollos/camara/internal/domain"
)

// Definition describes one fixed report filter. An empty Kind selects every singular.
type Definition struct {
	Name  string             `json:"name"`
	Title string             `json:"title"`
	Sheet string             `json:"sheet"`
	Code  domain.ReceiptType `json:"code"`
	Kind  domain.EntityKind  `json:"kind,omitempty"`
}

// Definitions lists the eight reports in presentation order.
var Definitions = []Definition{
	{Name: "taxas_manutencao", Title: "Relatório de Taxas de Manutenção (3)", Sheet: "3 - Manutenção", Code: domain.ReceiptMaintenance},
	{Name: "taxas_marketing", Title: "Relatório de Taxas de Marketing (4)", Sheet: "4 - Marketing", Code: domain.ReceiptMarketing},
	{Name: "multas_juros", Title: "Relatório de Multas e Juros (5)", Sheet: "5 - Multas e Juros", Code: domain.ReceiptInterest},
	{Name: "outras", Title: "Relatório de Outras (6)", Sheet: "6 - Outras", Code: domain.ReceiptOther},
	{Name: "pre_pagamento_operadoras", Title: "Relatório de Pré-pagamento (1) - Operadoras", Sheet: "1 - Pré-pag. Operadoras", Code: domain.ReceiptPrePayment, Kind: domain.EntityOperator},
	{Name: "custo_operacional_operadoras", Title: "Relatório de Custo Operacional (2) - Operadoras", Sheet: "2 - Custo Op. Operadoras", Code: domain.ReceiptOperatingCost, Kind: domain.EntityOperator},
	{Name: "pre_pagamento_prestadoras", Title: "Relatório de Pré-pagamento (1) - Prestadoras", Sheet: "1 - Pré-pag. Prestadoras", Code: domain.ReceiptPrePayment, Kind: domain.EntityProvider},
	{Name: "custo_operacional_prestadoras", Title: "Relatório de Custo Operacional (2) - Prestadoras", Sheet: "2 - Custo Op. Prestadoras", Code: domain.ReceiptOperatingCost, Kind: domain.EntityProvider},
}

// Matches reports whether e belongs to the report. Synthetic IRRF rows never match: the
// withheld amount is totalled by Summarize, not added to the category gross.
func (d Definition) Matches(e domain.LedgerEntry) bool {
	if ledger.IsWithholdingRow(e) {
		return false
	}
	if e.Source.CodigoTipoRecebimento != int(d.Code) {
		return false
	}
	return d.Kind == "" || e.Source.EntityKind() == d.Kind
}

// Report is a filtered view over the export entries.
type Report struct {
	Definition
	Entries []domain.LedgerEntry `json:"entries"`
	Count   int                  `json:"count"`
	Total   decimal.Decimal      `json:"total"`
}

// ReferenceDate returns the DATA of the first entry, or "" for an empty report.
func (r Report) ReferenceDate() string {
	if len(r.Entries) == 0 {
		return ""
	}
	return r.Entries[0].Data.Format(ledger.DateLayout)
}

// Table renders the report entries in the export layout.
func (r Report) Table() *domain.Table {
	return ledger.ExportTable(r.Entries, false)
}

// Build applies every definition to entries. Empty reports are kept with a zero count.
func Build(entries []domain.LedgerEntry) []Report {
	out := make([]Report, 0, len(Definitions))
	for _, def := range Definitions {
		r := Report{Definition: def, Total: decimal.Zero}
		for _, e := range entries {
			if def.Matches(e) {
				r.Entries = append(r.Entries, e)
				r.Total = r.Total.Add(e.Valor)
			}
		}
		r.Count = len(r.Entries)
		out = append(out, r)
	}
	return out
}

// Lookup finds a report by name.
func Lookup(reports []Report, name string) (Report, bool) {
	for _, r := range reports {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Report{}, false
}

// Line is one presentation row with account labels resolved from the catalog.
type Line struct {
	Data        string          `json:"data"`
	Complemento string          `json:"complemento"`
	Valor       decimal.Decimal `json:"valor"`
	Debito      string          `json:"debito"`
	Credito     string          `json:"credito"`
	Historico   string          `json:"historico"`
}

// Lines resolves the report rows for display.
func (r Report) Lines() []Line {
	lines := make([]Line, 0, len(r.Entries))
	for _, e := range r.Entries {
		lines = append(lines, Line{
			Data:        e.Data.Format(ledger.DateLayout),
			Complemento: e.Complemento,
			Valor:       e.Valor,
			Debito:      domain.AccountLabel(e.Debito),
			Credito:     domain.AccountLabel(e.Credito),
			Historico:   domain.AccountLabel(e.Historico),
		})
	}
	return lines
}
