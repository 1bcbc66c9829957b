package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invocr/internal/domain"
	"invocr/internal/export"
)

func sampleRecord() domain.ExtractionRecord {
	name := "חברת בדיקה בע\"מ"
	number := "123456789"
	total := 1170.0
	vat := 170.0
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	data := domain.NewParsedInvoiceData()
	data.DocumentType = domain.DocumentTypeTaxInvoice
	data.DocumentTypeConfidence = 1.0
	data.BusinessName = &name
	data.BusinessNameConfidence = 0.98
	data.InvoiceNumber = &number
	data.InvoiceNumberConfidence = 1.0
	data.TransactionDate = &date
	data.TransactionDateConfidence = 0.97
	data.AmountAfterVAT = &total
	data.AmountAfterVATConfidence = 1.0
	data.VATAmount = &vat
	data.VATAmountConfidence = 0.7

	return domain.ExtractionRecord{
		RunID:             uuid.New(),
		FileName:          "invoice-001.txt",
		ParsedAt:          time.Date(2024, time.June, 2, 10, 30, 0, 0, time.UTC),
		Data:              data,
		OverallConfidence: data.OverallConfidence(),
	}
}

func TestWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords([]domain.ExtractionRecord{sampleRecord()}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Len(t, header, 23)
	assert.Equal(t, "File Name", header[0])
	assert.Equal(t, "Error", header[22])

	row := rows[1]
	assert.Equal(t, "invoice-001.txt", row[0])
	assert.Equal(t, "tax_invoice", row[2])
	assert.Equal(t, "123456789", row[4])
	assert.Equal(t, "2024-06-01", row[6])
	assert.Equal(t, "חברת בדיקה בע\"מ", row[8])
	assert.Equal(t, "1170.00", row[16])
	assert.Equal(t, "170.00", row[14])
	assert.Equal(t, "", row[22])
}

func TestWriter_FailedRecordKeepsMetadataOnly(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewWriter(&buf)

	rec := domain.ExtractionRecord{
		RunID:    uuid.New(),
		FileName: "broken.txt",
		ParsedAt: time.Now(),
		Error:    "read failed",
	}
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords([]domain.ExtractionRecord{rec}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "broken.txt", row[0])
	assert.Equal(t, "read failed", row[22])
	for _, col := range row[2:21] {
		assert.Empty(t, col)
	}
}

func TestWriter_EmptyConfidenceCellsWhenUnset(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewWriter(&buf)

	rec := sampleRecord()
	rec.Data.VATAmountConfidence = 0

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords([]domain.ExtractionRecord{rec}))
	w.Flush()

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows[1][15])
	assert.Equal(t, "1.00", rows[1][17])
}
