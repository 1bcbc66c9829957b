package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	businessNameLabelPattern = regexp.MustCompile(
		`(?i)(?:שם\s*העסק|business\s*name|company\s*name)\s*[:\-]?\s*\n?\s*([^\n]{3,80})`)
	businessNameInlinePattern = regexp.MustCompile(
		`(?i)([א-ת\s\w&,\.]+)\s*(?:בע[״"]מ|Ltd\.?|Inc\.?|LLC|PBC|L\.L\.C\.)`)
	businessNameLinePattern = regexp.MustCompile(
		`(?im)^([A-Za-z][A-Za-z\s&,\.\-]+(?:Ltd\.?|Inc\.?|LLC|PBC|L\.L\.C\.))\s*$`)

	businessNameDigitsOnlyPattern = regexp.MustCompile(`^\d+$`)
	businessNameNumericLinePattern = regexp.MustCompile(`^\d+[\d\/\.\-\s]*$`)
)

var businessNameExcludeKeywords = []string{
	"חשבונית", "invoice", "receipt", "קבלה", "total", "סה\"כ", "סה״כ",
	"vat", "מע\"מ", "מע״מ", "date", "תאריך", "amount", "סכום",
	"http://", "https://", "@", "payment", "subtotal", "description",
	"quantity", "price", "item", "service",
}

var businessNameZone = topZone(0.2, 0.7)

// BusinessNameExtractor finds the issuing business's name: an explicit label,
// a legal-suffix-terminated line, a legal suffix inline, then a heuristic
// scan of the first twenty non-empty lines.
type BusinessNameExtractor struct{}

func (e BusinessNameExtractor) FieldName() string { return "BusinessName" }

func (e BusinessNameExtractor) Extract(normalizedText string) Result[string] {
	var result Result[string]
	result.Factors = NewFactors()

	if strings.TrimSpace(normalizedText) == "" {
		return result
	}

	if loc := businessNameLabelPattern.FindStringSubmatchIndex(normalizedText); loc != nil {
		name := strings.TrimSpace(normalizedText[loc[2]:loc[3]])
		if isValidBusinessName(name) {
			return e.buildResult(name, "Priority1_ExplicitLabel", 1.0, loc[0], normalizedText)
		}
	}

	if loc := businessNameLinePattern.FindStringSubmatchIndex(normalizedText); loc != nil {
		name := strings.TrimSpace(normalizedText[loc[2]:loc[3]])
		if isValidBusinessName(name) {
			return e.buildResult(name, "Priority2_CompanyDesignationLine", 0.96, loc[0], normalizedText)
		}
	}

	if loc := businessNameInlinePattern.FindStringIndex(normalizedText); loc != nil {
		// The full match, legal suffix included, is the name here.
		name := strings.TrimSpace(normalizedText[loc[0]:loc[1]])
		if isValidBusinessName(name) {
			return e.buildResult(name, "Priority3_CompanyDesignation", 0.95, loc[0], normalizedText)
		}
	}

	// Heuristic: first substantial line near the top of the document.
	lineIndex := 0
	for _, line := range nonEmptyLines(normalizedText, 20) {
		trimmed := strings.TrimSpace(line)
		lineIndex++

		if utf8.RuneCountInString(trimmed) < 5 {
			continue
		}
		if containsAnyFold(trimmed, businessNameExcludeKeywords) {
			continue
		}
		if businessNameNumericLinePattern.MatchString(trimmed) {
			continue
		}
		if strings.Contains(trimmed, "http") || strings.Contains(trimmed, "www.") || strings.Contains(trimmed, "@") {
			continue
		}
		if !isValidBusinessName(trimmed) {
			continue
		}

		positionMultiplier := 1.0
		if lineIndex > 5 {
			positionMultiplier = 0.85
		}

		result.Value = &trimmed
		result.PatternUsed = "Priority4_FirstLine"
		result.Factors.PatternPriority = 0.7 * positionMultiplier
		result.Factors.PositionScore = positionMultiplier
		result.Confidence = result.Factors.Overall()
		return result
	}

	return result
}

func (e BusinessNameExtractor) buildResult(name, pattern string, priority float64, matchPos int, text string) Result[string] {
	result := Result[string]{Value: &name, PatternUsed: pattern, Factors: NewFactors()}
	result.Factors.PatternPriority = priority
	result.Factors.PositionScore = positionScore(matchPos, len(text), businessNameZone)
	result.Confidence = result.Factors.Overall()
	return result
}

func isValidBusinessName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	// Hebrew names count by rune, not byte.
	runeCount := utf8.RuneCountInString(name)
	if runeCount < 3 || runeCount > 80 {
		return false
	}
	if businessNameDigitsOnlyPattern.MatchString(name) {
		return false
	}

	digitCount := 0
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digitCount++
		}
	}
	if float64(digitCount) > float64(runeCount)*0.5 {
		return false
	}

	if strings.Contains(name, "http://") || strings.Contains(name, "https://") ||
		strings.Contains(name, "www.") || strings.Contains(name, "@") {
		return false
	}

	return true
}

// nonEmptyLines returns up to limit non-empty lines of text.
func nonEmptyLines(text string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines
}

func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
