package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// Invoice number patterns, strongest label first. Go's RE2 has no
// lookarounds, so the trailing (?!\w) of the original rules is expressed as
// \b after the digit run, and the keyword-lookbehind rule anchors position
// scoring on the digit group instead of the whole match.
var (
	invoiceNumExplicitPattern = regexp.MustCompile(
		`(?i)(?:חשבונית|invoice)\s*(?:מס[׳']?|מספר|#|num|no\.?|number)?\s*[:\-]?\s*(\d{4,12})\b`)
	invoiceNumReceiptPattern = regexp.MustCompile(
		`(?i)(?:קבלה|receipt)\s*(?:מס[׳']?|מספר|#|num|no\.?|number)?\s*[:\-]?\s*(\d{4,12})\b`)
	invoiceNumGenericPattern = regexp.MustCompile(
		`(?i)(?:מס[׳']|מספר|#|no\.?)\s*[:\-]?\s*(\d{4,12})\b`)
	invoiceNumAlnumExplicitPattern = regexp.MustCompile(
		`(?i)(?:חשבונית|invoice|קבלה|receipt)\s*(?:מס[׳']?|מספר|#|num|no\.?|number)\s*[:\-]?\s*([A-Za-z0-9]+-[A-Za-z0-9]+)`)
	invoiceNumAlnumNearPattern = regexp.MustCompile(
		`(?i)(?:invoice|receipt|חשבונית|קבלה).{0,20}?([A-Z]{2,}[A-Z0-9]*-[0-9]+)`)
	invoiceNumAlnumStandalonePattern = regexp.MustCompile(
		`(?i)\b([A-Z]{2,}[A-Z0-9]*-[A-Z0-9]{2,})\b`)
	invoiceNumStandalonePattern = regexp.MustCompile(
		`(?i)(?:חשבונית|invoice|קבלה|receipt).{0,50}?(\d{8,12})`)
)

var invoiceNumExcludeKeywords = []string{
	"הזמנה", "booking", "order", "המחאה", "check", "תאריך", "date",
}

var invoiceNumDocKeywords = []string{
	"חשבונית", "invoice", "קבלה", "receipt", "מס", "no", "number",
}

var invoiceNumberZone = topZone(0.4, 0.8)

type invoiceNumberRule struct {
	re           *regexp.Regexp
	name         string
	priority     float64
	alphanumeric bool
	// anchorGroup selects the submatch whose offset stands in for the match
	// position (1 for the keyword-proximity rule, 0 otherwise).
	anchorGroup int
}

var invoiceNumberCascade = []invoiceNumberRule{
	{invoiceNumExplicitPattern, "Priority1_ExplicitInvoice", 1.0, false, 0},
	{invoiceNumReceiptPattern, "Priority2_Receipt", 1.0, false, 0},
	{invoiceNumAlnumExplicitPattern, "Priority4_AlphanumericExplicit", 0.98, true, 0},
	{invoiceNumAlnumNearPattern, "Priority5_AlphanumericNear", 0.92, true, 0},
	{invoiceNumGenericPattern, "Priority3_GenericNumber", 0.85, false, 0},
	{invoiceNumAlnumStandalonePattern, "Priority6_AlphanumericStandalone", 0.75, true, 0},
	{invoiceNumStandalonePattern, "Priority7_StandaloneID", 0.7, false, 1},
}

// InvoiceNumberExtractor finds the invoice or receipt number via a seven-rule
// cascade, from explicit labels down to standalone identifiers near document
// keywords.
type InvoiceNumberExtractor struct{}

func (e InvoiceNumberExtractor) FieldName() string { return "InvoiceNumber" }

func (e InvoiceNumberExtractor) Extract(normalizedText string) Result[string] {
	var result Result[string]
	result.Factors = NewFactors()

	if strings.TrimSpace(normalizedText) == "" {
		return result
	}

	for _, rule := range invoiceNumberCascade {
		loc := rule.re.FindStringSubmatchIndex(normalizedText)
		if loc == nil {
			continue
		}

		invoiceNumber := normalizedText[loc[2]:loc[3]]
		matchPos := loc[2*rule.anchorGroup]

		if rule.alphanumeric {
			if len(invoiceNumber) < 5 || len(invoiceNumber) > 20 {
				continue
			}
			if isNearKeyword(normalizedText, matchPos, invoiceNumExcludeKeywords, 50) {
				continue
			}
		} else {
			if len(invoiceNumber) < 4 || len(invoiceNumber) > 12 {
				continue
			}
			if isNearKeyword(normalizedText, matchPos, invoiceNumExcludeKeywords, 50) {
				continue
			}
			// An 8-digit run that parses as DDMMYYYY is almost always a date.
			if len(invoiceNumber) == 8 && looksLikeDate(invoiceNumber) {
				continue
			}
			// A 9-digit run away from invoice keywords is likely a business ID.
			if len(invoiceNumber) == 9 && !isNearKeyword(normalizedText, matchPos, invoiceNumDocKeywords, 30) {
				continue
			}
		}

		result.Value = &invoiceNumber
		result.PatternUsed = rule.name
		result.Factors.PatternPriority = rule.priority
		result.Factors.PositionScore = positionScore(matchPos, len(normalizedText), invoiceNumberZone)
		result.Confidence = result.Factors.Overall()

		return result
	}

	return result
}

// looksLikeDate reports whether an 8-digit run is a plausible DDMMYYYY date.
func looksLikeDate(number string) bool {
	if len(number) != 8 {
		return false
	}

	day, err1 := strconv.Atoi(number[0:2])
	month, err2 := strconv.Atoi(number[2:4])
	year, err3 := strconv.Atoi(number[4:8])
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}

	return day >= 1 && day <= 31 && month >= 1 && month <= 12 && year >= 2000 && year <= 2100
}
