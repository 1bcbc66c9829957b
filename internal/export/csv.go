// Package export writes batch extraction results as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"invocr/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (23 columns).
var columns = []string{
	"File Name",
	"Parsed At",
	"Document Type",
	"Document Type Confidence",
	"Invoice Number",
	"Invoice Number Confidence",
	"Transaction Date",
	"Transaction Date Confidence",
	"Business Name",
	"Business Name Confidence",
	"Business ID",
	"Business ID Confidence",
	"Amount Before VAT",
	"Amount Before VAT Confidence",
	"VAT Amount",
	"VAT Amount Confidence",
	"Amount After VAT",
	"Amount After VAT Confidence",
	"Reference Number",
	"Reference Type",
	"Service Description",
	"Overall Confidence",
	"Error",
}

// Writer wraps csv.Writer for exporting extraction records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of extraction records to CSV rows and writes
// them.
func (w *Writer) WriteRecords(records []domain.ExtractionRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// recordToRow converts a single extraction record to a row. Failed records
// carry only metadata and the error column.
func recordToRow(rec *domain.ExtractionRecord) []string {
	row := make([]string, len(columns))

	row[0] = rec.FileName
	row[1] = rec.ParsedAt.Format(time.RFC3339)
	row[21] = formatConfidence(rec.OverallConfidence)
	row[22] = rec.Error

	data := rec.Data
	if data == nil {
		return row
	}

	row[2] = string(data.DocumentType)
	row[3] = formatConfidence(data.DocumentTypeConfidence)
	row[4] = derefString(data.InvoiceNumber)
	row[5] = formatConfidence(data.InvoiceNumberConfidence)
	row[6] = formatDate(data.TransactionDate)
	row[7] = formatConfidence(data.TransactionDateConfidence)
	row[8] = derefString(data.BusinessName)
	row[9] = formatConfidence(data.BusinessNameConfidence)
	row[10] = derefString(data.BusinessID)
	row[11] = formatConfidence(data.BusinessIDConfidence)
	row[12] = formatAmount(data.AmountBeforeVAT)
	row[13] = formatConfidence(data.AmountBeforeVATConfidence)
	row[14] = formatAmount(data.VATAmount)
	row[15] = formatConfidence(data.VATAmountConfidence)
	row[16] = formatAmount(data.AmountAfterVAT)
	row[17] = formatConfidence(data.AmountAfterVATConfidence)
	row[18] = derefString(data.ReferenceNumber)
	row[19] = string(data.ReferenceType)
	row[20] = derefString(data.ServiceDescription)

	return row
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatConfidence(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
