package parser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invocr/internal/domain"
	"invocr/internal/parser"
)

func TestInvoiceParser_HebrewTaxInvoice(t *testing.T) {
	p := parser.NewInvoiceParser()
	text := "חשבונית מס 123456789\n" +
		"חברת בדיקה בע\"מ\n" +
		"תאריך: 01/06/2024\n" +
		"סה\"כ: ₪1170.00"

	data := p.Parse(text)
	require.NotNil(t, data)

	t.Run("document_type", func(t *testing.T) {
		assert.Equal(t, domain.DocumentTypeTaxInvoice, data.DocumentType)
		assert.InDelta(t, 1.0, data.DocumentTypeConfidence, 1e-9)
	})

	t.Run("invoice_number", func(t *testing.T) {
		require.NotNil(t, data.InvoiceNumber)
		assert.Equal(t, "123456789", *data.InvoiceNumber)
		assert.Greater(t, data.InvoiceNumberConfidence, 0.9)
	})

	t.Run("business_name", func(t *testing.T) {
		require.NotNil(t, data.BusinessName)
		assert.Contains(t, *data.BusinessName, "בדיקה")
	})

	t.Run("transaction_date", func(t *testing.T) {
		require.NotNil(t, data.TransactionDate)
		assert.Equal(t, 2024, data.TransactionDate.Year())
		assert.Equal(t, time.June, data.TransactionDate.Month())
		assert.Equal(t, 1, data.TransactionDate.Day())
	})

	t.Run("amounts", func(t *testing.T) {
		require.NotNil(t, data.AmountAfterVAT)
		require.NotNil(t, data.VATAmount)
		require.NotNil(t, data.AmountBeforeVAT)
		assert.InDelta(t, 1170.00, *data.AmountAfterVAT, 1e-9)
		assert.InDelta(t, 170.00, *data.VATAmount, 1e-6)
		assert.InDelta(t, 1000.00, *data.AmountBeforeVAT, 1e-6)
	})

	t.Run("overall_confidence", func(t *testing.T) {
		overall := data.OverallConfidence()
		assert.Greater(t, overall, 0.9)
		assert.LessOrEqual(t, overall, 1.0)
	})
}

func TestInvoiceParser_EnglishInvoice(t *testing.T) {
	p := parser.NewInvoiceParser()
	text := "Acme Widgets Ltd.\n" +
		"Invoice No: 7001234\n" +
		"Customer: Example Corporation Inc\n" +
		"Date: 15/03/2024\n" +
		"Subtotal: 200.00\n" +
		"VAT (17%): 34.00\n" +
		"Total Due: 234.00\n" +
		"Service: software development"

	data := p.Parse(text)
	require.NotNil(t, data)

	assert.Equal(t, domain.DocumentTypeInvoice, data.DocumentType)

	require.NotNil(t, data.BusinessName)
	assert.Equal(t, "Acme Widgets Ltd.", *data.BusinessName)

	require.NotNil(t, data.InvoiceNumber)
	assert.Equal(t, "7001234", *data.InvoiceNumber)

	require.NotNil(t, data.TransactionDate)
	assert.Equal(t, time.March, data.TransactionDate.Month())
	assert.Equal(t, 15, data.TransactionDate.Day())

	require.NotNil(t, data.AmountAfterVAT)
	assert.InDelta(t, 234.00, *data.AmountAfterVAT, 1e-9)
	require.NotNil(t, data.VATAmount)
	assert.InDelta(t, 34.00, *data.VATAmount, 1e-9)
	require.NotNil(t, data.AmountBeforeVAT)
	assert.InDelta(t, 200.00, *data.AmountBeforeVAT, 1e-9)

	require.NotNil(t, data.ServiceDescription)
	assert.Equal(t, "software development", *data.ServiceDescription)
}

func TestInvoiceParser_ReferenceNumber(t *testing.T) {
	p := parser.NewInvoiceParser()
	data := p.Parse("קבלה מספר 5544\nOrder No: ORD-11223\nסה\"כ: 58.50")

	require.NotNil(t, data.ReferenceNumber)
	assert.Equal(t, "ORD-11223", *data.ReferenceNumber)
	assert.Equal(t, domain.ReferenceTypeOrderID, data.ReferenceType)
	assert.Greater(t, data.ReferenceNumberConfidence, 0.0)
}

func TestInvoiceParser_BlankInput(t *testing.T) {
	p := parser.NewInvoiceParser()

	for _, text := range []string{"", "   ", "\n\n\t"} {
		data := p.Parse(text)
		require.NotNil(t, data)
		assert.Equal(t, domain.DocumentTypeUnknown, data.DocumentType)
		assert.Equal(t, domain.ReferenceTypeUnknown, data.ReferenceType)
		assert.Nil(t, data.BusinessName)
		assert.Nil(t, data.TransactionDate)
		assert.Nil(t, data.AmountAfterVAT)
		assert.Nil(t, data.InvoiceNumber)
		assert.Zero(t, data.OverallConfidence())
	}
}

func TestInvoiceParser_GarbageInputNeverFails(t *testing.T) {
	p := parser.NewInvoiceParser()

	inputs := []string{
		"!!!@@@###$$$",
		"0000000000000000000000",
		"תו אחד",
		"a\nb\nc\nd",
	}
	for _, text := range inputs {
		data := p.Parse(text)
		require.NotNil(t, data)
		for _, c := range []float64{
			data.BusinessNameConfidence,
			data.TransactionDateConfidence,
			data.AmountAfterVATConfidence,
			data.InvoiceNumberConfidence,
			data.DocumentTypeConfidence,
		} {
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 1.0)
		}
	}
}

func TestInvoiceParser_RawOCRDefectsRepaired(t *testing.T) {
	p := parser.NewInvoiceParser()
	// scattered compounds and smart quotes straight from OCR
	data := p.Parse("חשבונית מס 123456\nסה ״ כ: 234.00\nמ ע מ: 34.00")

	require.NotNil(t, data.AmountAfterVAT)
	assert.InDelta(t, 234.00, *data.AmountAfterVAT, 1e-9)
	require.NotNil(t, data.VATAmount)
	assert.InDelta(t, 34.00, *data.VATAmount, 1e-9)
}
