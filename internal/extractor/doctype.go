package extractor

import (
	"regexp"
	"strings"

	"invocr/internal/domain"
)

// documentTypePattern matches any of the bilingual document-type keywords in
// one pass; the matched text is then classified by keyword priority.
var documentTypePattern = regexp.MustCompile(
	`(?i)(?:חשבונית\s*מס|חשבונית|קבלה|חש[׳']?\s*מס|tax\s*invoice|invoice|receipt)`,
)

var documentTypeZone = topZone(0.3, 0.85)

// DocumentTypeExtractor classifies the document as tax invoice, invoice or
// receipt. Tax invoice wins over invoice wins over receipt when keyword
// fragments co-occur in the same match.
type DocumentTypeExtractor struct{}

func (e DocumentTypeExtractor) FieldName() string { return "DocumentType" }

func (e DocumentTypeExtractor) Extract(normalizedText string) Result[domain.DocumentType] {
	unknown := domain.DocumentTypeUnknown
	result := Result[domain.DocumentType]{Value: &unknown, Factors: NewFactors()}

	if strings.TrimSpace(normalizedText) == "" {
		return result
	}

	loc := documentTypePattern.FindStringIndex(normalizedText)
	if loc == nil {
		return result
	}

	matched := strings.ToLower(normalizedText[loc[0]:loc[1]])
	docType := domain.DocumentTypeUnknown

	switch {
	case strings.Contains(matched, "חשבונית מס"),
		strings.Contains(matched, "חש") && strings.Contains(matched, "מס"),
		strings.Contains(matched, "tax") && strings.Contains(matched, "invoice"):
		docType = domain.DocumentTypeTaxInvoice
	case strings.Contains(matched, "חשבונית"), strings.Contains(matched, "invoice"):
		docType = domain.DocumentTypeInvoice
	case strings.Contains(matched, "קבלה"), strings.Contains(matched, "receipt"):
		docType = domain.DocumentTypeReceipt
	}

	if docType != domain.DocumentTypeUnknown {
		result.Value = &docType
		result.PatternUsed = "DocumentTypePattern"
		result.Factors.PatternPriority = 1.0
		result.Factors.PositionScore = positionScore(loc[0], len(normalizedText), documentTypeZone)
		result.Confidence = result.Factors.Overall()
	}

	return result
}
