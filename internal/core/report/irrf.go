package report

import (
	"github.com/shopspring/decimal"

	"github.com/vcollos/camara/internal/core/ledger"
	"github.com/vcollos/camara/internal/domain"
)

// IRRFSummary totaliza o IRRF de um conjunto de lançamentos.
//
// Withheld* somam os lançamentos sintéticos (reconhecidos pelo sufixo "| IRRF"); Gross*, IRRF*
// e Net* vêm dos lançamentos primários e da coluna IRRF de origem.
type IRRFSummary struct {
	WithheldPayable    decimal.Decimal `json:"irrf_lancado_a_pagar"`
	WithheldReceivable decimal.Decimal `json:"irrf_lancado_a_receber"`
	WithheldTotal      decimal.Decimal `json:"irrf_lancado_total"`
	WithholdingRows    int             `json:"registros_irrf"`

	GrossPayable    decimal.Decimal `json:"valor_bruto_a_pagar"`
	GrossReceivable decimal.Decimal `json:"valor_bruto_a_receber"`
	IRRFPayable     decimal.Decimal `json:"irrf_a_pagar"`
	IRRFReceivable  decimal.Decimal `json:"irrf_a_receber"`
	IRRFTotal       decimal.Decimal `json:"total_irrf"`
	RowsWithIRRF    int             `json:"registros_com_irrf"`
	NetPayable      decimal.Decimal `json:"valor_liquido_a_pagar"`
	NetReceivable   decimal.Decimal `json:"valor_liquido_a_receber"`
}

// Summarize computes the IRRF totals by direction.
func Summarize(entries []domain.LedgerEntry) IRRFSummary {
	s := IRRFSummary{
		WithheldPayable:    decimal.Zero,
		WithheldReceivable: decimal.Zero,
		GrossPayable:       decimal.Zero,
		GrossReceivable:    decimal.Zero,
		IRRFPayable:        decimal.Zero,
		IRRFReceivable:     decimal.Zero,
	}
	for _, e := range entries {
		dir := e.Source.Direction()
		if ledger.IsWithholdingRow(e) {
			s.WithholdingRows++
			switch dir {
			case domain.DirectionPayable:
				s.WithheldPayable = s.WithheldPayable.Add(e.Valor)
			case domain.DirectionReceivable:
				s.WithheldReceivable = s.WithheldReceivable.Add(e.Valor)
			}
			continue
		}

		// valores ilegíveis já foram reportados na transformação
		irrf, _ := ledger.Normalize(e.Source.IRRF)
		if irrf.IsPositive() {
			s.RowsWithIRRF++
		} else {
			irrf = decimal.Zero
		}
		switch dir {
		case domain.DirectionPayable:
			s.GrossPayable = s.GrossPayable.Add(e.Valor)
			s.IRRFPayable = s.IRRFPayable.Add(irrf)
		case domain.DirectionReceivable:
			s.GrossReceivable = s.GrossReceivable.Add(e.Valor)
			s.IRRFReceivable = s.IRRFReceivable.Add(irrf)
		}
	}
	s.WithheldTotal = s.WithheldPayable.Add(s.WithheldReceivable)
	s.IRRFTotal = s.IRRFPayable.Add(s.IRRFReceivable)
	s.NetPayable = s.GrossPayable.Sub(s.IRRFPayable)
	s.NetReceivable = s.GrossReceivable.Sub(s.IRRFReceivable)
	return s
}
