package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	irrfSheet    = "IRRF"
	defaultSheet = "Sheet1"
	amountNumFmt = 4 // #,##0.00
	titleRow     = 1
	summaryRow   = 2
	headerRow    = 4
	firstDataRow = 5
	totalLabel   = "Valor total"
	countLabel   = "Total de registros"
	emptyMessage = "Nenhum dado encontrado"
)

var lineHeader = []any{"Data", "Complemento", "Valor", "Débito", "Crédito", "Histórico"}

// WriteWorkbook writes one sheet per report plus the IRRF summary sheet as XLSX.
func WriteWorkbook(w io.Writer, reports []Report, summary IRRFSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return err
	}

	for _, r := range reports {
		if _, err := f.NewSheet(r.Sheet); err != nil {
			return fmt.Errorf("erro ao criar planilha %s: %w", r.Sheet, err)
		}
		if err := writeReportSheet(f, r, bold, amount); err != nil {
			return fmt.Errorf("erro ao preencher planilha %s: %w", r.Sheet, err)
		}
	}

	if _, err := f.NewSheet(irrfSheet); err != nil {
		return err
	}
	if err := writeIRRFSheet(f, summary, bold, amount); err != nil {
		return fmt.Errorf("erro ao preencher planilha IRRF: %w", err)
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return err
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeReportSheet(f *excelize.File, r Report, bold, amount int) error {
	sheet := r.Sheet
	if err := f.SetCellValue(sheet, cell(1, titleRow), r.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(1, titleRow), cell(1, titleRow), bold); err != nil {
		return err
	}
	summary := []any{countLabel, r.Count, totalLabel, r.Total.InexactFloat64(), "Data de referência", r.ReferenceDate()}
	if err := f.SetSheetRow(sheet, cell(1, summaryRow), &summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(4, summaryRow), cell(4, summaryRow), amount); err != nil {
		return err
	}

	if r.Count == 0 {
		return f.SetCellValue(sheet, cell(1, headerRow), emptyMessage)
	}

	if err := f.SetSheetRow(sheet, cell(1, headerRow), &lineHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(1, headerRow), cell(len(lineHeader), headerRow), bold); err != nil {
		return err
	}
	for i, l := range r.Lines() {
		row := []any{l.Data, l.Complemento, l.Valor.InexactFloat64(), l.Debito, l.Credito, l.Historico}
		if err := f.SetSheetRow(sheet, cell(1, firstDataRow+i), &row); err != nil {
			return err
		}
	}
	last := firstDataRow + r.Count - 1
	if err := f.SetCellStyle(sheet, cell(3, firstDataRow), cell(3, last), amount); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 60); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "D", "F", 40)
}

func writeIRRFSheet(f *excelize.File, s IRRFSummary, bold, amount int) error {
	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Valor bruto a pagar", s.GrossPayable},
		{"IRRF a pagar", s.IRRFPayable},
		{"Valor líquido a pagar", s.NetPayable},
		{"Valor bruto a receber", s.GrossReceivable},
		{"IRRF a receber", s.IRRFReceivable},
		{"Valor líquido a receber", s.NetReceivable},
		{"Total IRRF", s.IRRFTotal},
		{"IRRF lançado a pagar", s.WithheldPayable},
		{"IRRF lançado a receber", s.WithheldReceivable},
		{"IRRF lançado total", s.WithheldTotal},
	}
	if err := f.SetCellValue(irrfSheet, cell(1, titleRow), "Resumo de IRRF"); err != nil {
		return err
	}
	if err := f.SetCellStyle(irrfSheet, cell(1, titleRow), cell(1, titleRow), bold); err != nil {
		return err
	}
	for i, r := range rows {
		line := []any{r.label, r.value.InexactFloat64()}
		if err := f.SetSheetRow(irrfSheet, cell(1, headerRow+i), &line); err != nil {
			return err
		}
	}
	last := headerRow + len(rows)
	counts := []any{"Registros com IRRF", s.RowsWithIRRF}
	if err := f.SetSheetRow(irrfSheet, cell(1, last), &counts); err != nil {
		return err
	}
	counts = []any{"Lançamentos de IRRF", s.WithholdingRows}
	if err := f.SetSheetRow(irrfSheet, cell(1, last+1), &counts); err != nil {
		return err
	}
	if err := f.SetCellStyle(irrfSheet, cell(2, headerRow), cell(2, last-1), amount); err != nil {
		return err
	}
	return f.SetColWidth(irrfSheet, "A", "A", 28)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
