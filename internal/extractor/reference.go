package extractor

import (
	"regexp"
	"strings"

	"invocr/internal/domain"
)

// ReferenceNumber is a free-form reference found on the document, tagged
// with the kind of reference its label implies.
type ReferenceNumber struct {
	Value string
	Type  domain.ReferenceType
}

var (
	referenceOrderPattern = regexp.MustCompile(
		`(?i)(?:Order\s*(?:ID|No|Number)|הזמנה\s*(?:מס|מספר))\s*[:\-#]?\s*([A-Z0-9\-]{4,20})`)
	referenceBookingPattern = regexp.MustCompile(
		`(?i)(?:Booking\s*(?:ID|No|Number)|Confirmation|אישור\s*(?:מס|מספר))\s*[:\-#]?\s*([A-Z0-9\-]{4,20})`)
	referenceRefPattern = regexp.MustCompile(
		`(?i)(?:Reference|Ref|אסמכתא)\s*[:\-#]?\s*([A-Z0-9\-]{4,20})`)
	referenceTransactionPattern = regexp.MustCompile(
		`(?i)(?:Transaction\s*(?:ID|No)|עסקה\s*מס)\s*[:\-#]?\s*([A-Z0-9\-]{4,20})`)
)

var referenceZone = topZone(0.5, 0.9)

type referenceRule struct {
	re       *regexp.Regexp
	name     string
	refType  domain.ReferenceType
	priority float64
}

var referenceCascade = []referenceRule{
	{referenceOrderPattern, "OrderId", domain.ReferenceTypeOrderID, 0.95},
	{referenceBookingPattern, "BookingId", domain.ReferenceTypeBookingID, 0.95},
	{referenceRefPattern, "Reference", domain.ReferenceTypeConfirmation, 0.9},
	{referenceTransactionPattern, "TransactionId", domain.ReferenceTypeTransaction, 0.9},
}

// ReferenceNumberExtractor finds order/booking/reference/transaction numbers
// via four mutually exclusive labelled patterns; the first match wins.
type ReferenceNumberExtractor struct{}

func (e ReferenceNumberExtractor) FieldName() string { return "ReferenceNumber" }

func (e ReferenceNumberExtractor) Extract(normalizedText string) Result[ReferenceNumber] {
	var result Result[ReferenceNumber]
	result.Factors = NewFactors()

	if strings.TrimSpace(normalizedText) == "" {
		return result
	}

	for _, rule := range referenceCascade {
		loc := rule.re.FindStringSubmatchIndex(normalizedText)
		if loc == nil {
			continue
		}

		refNumber := strings.TrimSpace(normalizedText[loc[2]:loc[3]])
		if len(refNumber) < 4 || len(refNumber) > 20 {
			continue
		}

		result.Value = &ReferenceNumber{Value: refNumber, Type: rule.refType}
		result.PatternUsed = rule.name
		result.Factors.PatternPriority = rule.priority
		result.Factors.PositionScore = positionScore(loc[0], len(normalizedText), referenceZone)
		result.Confidence = result.Factors.Overall()

		return result
	}

	return result
}
