package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/fiscal-receipts/internal/entity"
	"github.com/joseph-ayodele/fiscal-receipts/internal/report"
)

// Service produces XLSX bytes for a finished batch.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportXLSX returns a workbook with one row per receipt and a category
// summary block below the data.
func (s *Service) ExportXLSX(summary report.Summary, records []entity.ReceiptRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File",
		"CNPJ",
		"Company",
		"Amount (R$)",
		"Category",
		"Activity",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, rec := range records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		cnpj := ""
		if rec.CNPJ != nil {
			cnpj = *rec.CNPJ
		}
		company, activityDesc := "", ""
		if rec.Company != nil {
			company = rec.Company.LegalName
			activityDesc = rec.Company.Activity
		}

		write(1, rec.FileName)
		write(2, cnpj)
		write(3, company)
		write(4, rec.Amount.Float())
		write(5, string(rec.Category))
		write(6, activityDesc)
		row++
	}

	// Summary block under the data
	row++
	writeAt := func(col, r int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, r)
		_ = f.SetCellValue(sheet, cell, v)
	}
	writeAt(1, row, "Category totals")
	row++
	for _, t := range summary.Totals {
		writeAt(1, row, string(t.Category))
		writeAt(4, row, t.Total.Float())
		row++
	}
	writeAt(1, row, "Grand total")
	writeAt(4, row, summary.GrandTotal.Float())

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 28) // file
	_ = f.SetColWidth(sheet, "B", "B", 18) // cnpj
	_ = f.SetColWidth(sheet, "C", "C", 40) // company
	_ = f.SetColWidth(sheet, "D", "D", 14) // amount
	_ = f.SetColWidth(sheet, "E", "E", 16) // category
	_ = f.SetColWidth(sheet, "F", "F", 60) // activity

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
