// Package parser orchestrates the extraction pipeline: it normalizes the raw
// OCR text once, fans out to every field extractor and merges the successful
// results into a single ParsedInvoiceData record.
package parser

import (
	"invocr/internal/domain"
	"invocr/internal/extractor"
	"invocr/internal/normalizer"
)

// InvoiceParser runs every field extractor over one OCR text. The zero value
// is ready to use; a single instance is safe for concurrent Parse calls.
type InvoiceParser struct {
	documentType  extractor.DocumentTypeExtractor
	invoiceNumber extractor.InvoiceNumberExtractor
	date          extractor.DateExtractor
	businessName  extractor.BusinessNameExtractor
	businessID    extractor.BusinessIDExtractor
	reference     extractor.ReferenceNumberExtractor
	amounts       extractor.AmountExtractor
}

// NewInvoiceParser creates an InvoiceParser.
func NewInvoiceParser() *InvoiceParser {
	return &InvoiceParser{}
}

// Parse extracts every supported field from raw OCR text. Blank input yields
// an all-empty record; Parse never fails, absent fields simply stay nil
// with zero confidence.
func (p *InvoiceParser) Parse(rawText string) *domain.ParsedInvoiceData {
	result := domain.NewParsedInvoiceData()

	text := normalizer.Normalize(rawText)
	if text == "" {
		return result
	}

	if r := p.documentType.Extract(text); r.IsSuccess() {
		result.DocumentType = *r.Value
		result.DocumentTypeConfidence = r.Confidence
	}

	if r := p.invoiceNumber.Extract(text); r.IsSuccess() {
		result.InvoiceNumber = r.Value
		result.InvoiceNumberConfidence = r.Confidence
	}

	if r := p.date.Extract(text); r.IsSuccess() {
		result.TransactionDate = r.Value
		result.TransactionDateConfidence = r.Confidence
	}

	if r := p.businessName.Extract(text); r.IsSuccess() {
		result.BusinessName = r.Value
		result.BusinessNameConfidence = r.Confidence
	}

	if r := p.businessID.Extract(text); r.IsSuccess() {
		result.BusinessID = r.Value
		result.BusinessIDConfidence = r.Confidence
	}

	if r := p.reference.Extract(text); r.IsSuccess() {
		result.ReferenceNumber = &r.Value.Value
		result.ReferenceType = r.Value.Type
		result.ReferenceNumberConfidence = r.Confidence
	}

	amounts := p.amounts.ExtractAmounts(text)
	if amounts.Total.IsSuccess() {
		result.AmountAfterVAT = amounts.Total.Value
		result.AmountAfterVATConfidence = amounts.Total.Confidence
	}
	if amounts.VAT.IsSuccess() {
		result.VATAmount = amounts.VAT.Value
		result.VATAmountConfidence = amounts.VAT.Confidence
	}
	if amounts.BeforeVAT.IsSuccess() {
		result.AmountBeforeVAT = amounts.BeforeVAT.Value
		result.AmountBeforeVATConfidence = amounts.BeforeVAT.Confidence
	}

	// Service description is a best-effort auxiliary output with no
	// confidence score of its own.
	if desc := extractServiceDescription(text); desc != "" {
		result.ServiceDescription = &desc
	}

	return result
}
