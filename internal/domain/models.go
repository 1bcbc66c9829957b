package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParsedInvoiceData is the merged output of one extraction run over a single
// OCR text. Fields that could not be extracted stay nil and their confidence
// stays zero. The record is constructed once per input and never mutated
// afterwards.
type ParsedInvoiceData struct {
	BusinessName       *string    `json:"business_name,omitempty"`
	TransactionDate    *time.Time `json:"transaction_date,omitempty"`
	AmountBeforeVAT    *float64   `json:"amount_before_vat,omitempty"`
	AmountAfterVAT     *float64   `json:"amount_after_vat,omitempty"`
	VATAmount          *float64   `json:"vat_amount,omitempty"`
	BusinessID         *string    `json:"business_id,omitempty"`
	InvoiceNumber      *string    `json:"invoice_number,omitempty"`
	ServiceDescription *string    `json:"service_description,omitempty"`

	DocumentType    DocumentType  `json:"document_type"`
	ReferenceNumber *string       `json:"reference_number,omitempty"`
	ReferenceType   ReferenceType `json:"reference_type"`

	BusinessNameConfidence    float64 `json:"business_name_confidence"`
	TransactionDateConfidence float64 `json:"transaction_date_confidence"`
	AmountBeforeVATConfidence float64 `json:"amount_before_vat_confidence"`
	AmountAfterVATConfidence  float64 `json:"amount_after_vat_confidence"`
	VATAmountConfidence       float64 `json:"vat_amount_confidence"`
	BusinessIDConfidence      float64 `json:"business_id_confidence"`
	InvoiceNumberConfidence   float64 `json:"invoice_number_confidence"`
	DocumentTypeConfidence    float64 `json:"document_type_confidence"`
	ReferenceNumberConfidence float64 `json:"reference_number_confidence"`
}

// NewParsedInvoiceData returns an empty record with enum fields set to their
// unknown values.
func NewParsedInvoiceData() *ParsedInvoiceData {
	return &ParsedInvoiceData{
		DocumentType:  DocumentTypeUnknown,
		ReferenceType: ReferenceTypeUnknown,
	}
}

// ExtractionRecord pairs one input document with its extraction output, as
// produced by a batch run.
type ExtractionRecord struct {
	RunID             uuid.UUID          `json:"run_id"`
	FileName          string             `json:"file_name"`
	ParsedAt          time.Time          `json:"parsed_at"`
	Data              *ParsedInvoiceData `json:"data,omitempty"`
	OverallConfidence float64            `json:"overall_confidence"`
	Error             string             `json:"error,omitempty"`
}

// OverallConfidence averages the non-zero confidences of the four headline
// fields: business name, transaction date, after-VAT amount and invoice
// number. Fields that were not extracted are excluded from the average rather
// than counted as zero.
func (d *ParsedInvoiceData) OverallConfidence() float64 {
	scores := []float64{
		d.BusinessNameConfidence,
		d.TransactionDateConfidence,
		d.AmountAfterVATConfidence,
		d.InvoiceNumberConfidence,
	}

	sum := 0.0
	n := 0
	for _, s := range scores {
		if s > 0 {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
