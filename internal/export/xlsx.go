package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"invocr/internal/domain"
)

const resultsSheet = "Extraction Results"

// WriteXLSX writes extraction records to an Excel workbook at path: one row
// per document with values and confidences, plus a summary row with the
// average overall confidence of the successfully parsed documents.
func WriteXLSX(path string, records []domain.ExtractionRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(resultsSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	sum := 0.0
	parsed := 0
	for i := range records {
		row := recordToRow(&records[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(resultsSheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}

		if records[i].Error == "" {
			sum += records[i].OverallConfidence
			parsed++
		}
	}

	summaryCell, err := excelize.CoordinatesToCellName(1, len(records)+3)
	if err != nil {
		return fmt.Errorf("summary cell name: %w", err)
	}
	summary := fmt.Sprintf("Documents: %d, parsed: %d", len(records), parsed)
	if parsed > 0 {
		summary += fmt.Sprintf(", average confidence: %.2f", sum/float64(parsed))
	}
	if err := f.SetCellValue(resultsSheet, summaryCell, summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
