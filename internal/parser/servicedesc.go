package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	descriptionLabelPattern = regexp.MustCompile(
		`(?i)(?:Description|תיאור)\s*[:\-]?\s*\n\s*([^\n]+)`)
	serviceLabelPattern = regexp.MustCompile(
		`(?i)(?:Service|שירות)\s*[:\-]?\s*([^\n]+)`)
)

var descriptionKeywords = []string{
	"שירות", "service", "מוצר", "product", "development",
}

// extractServiceDescription finds a line describing the billed service or
// product: an explicit label first, otherwise the first keyword-bearing line
// of plausible length.
func extractServiceDescription(text string) string {
	for _, re := range []*regexp.Regexp{descriptionLabelPattern, serviceLabelPattern} {
		if m := re.FindStringSubmatch(text); m != nil {
			desc := strings.TrimSpace(m[1])
			n := utf8.RuneCountInString(desc)
			if n > 3 && n < 200 {
				return desc
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		n := utf8.RuneCountInString(trimmed)
		if n > 10 && n < 200 && containsAny(strings.ToLower(trimmed), descriptionKeywords) {
			return trimmed
		}
	}

	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
