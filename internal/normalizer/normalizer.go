// Package normalizer canonicalizes raw OCR text before field extraction.
// Mixed Hebrew/English invoice scans arrive with smart quotes, Hebrew
// punctuation variants, directional marks and scattered compound words; the
// extractors downstream assume all of that has been flattened out.
package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	multipleSpacesPattern   = regexp.MustCompile(`[ \t]+`)
	multipleNewlinesPattern = regexp.MustCompile(`\n{3,}`)

	// Hebrew OCR compound repairs. Go's \b is ASCII-only, so Hebrew word
	// boundaries are emulated with explicit non-Hebrew-letter classes.
	hebrewVATPattern     = regexp.MustCompile(`(^|[^א-ת])מ\s*ע\s*מ([^א-ת]|$)`)
	hebrewCompanyPattern = regexp.MustCompile(`(^|[^א-ת])ח\s*פ([^א-ת]|$)`)
	hebrewDealerPattern  = regexp.MustCompile(`(^|[^א-ת])ע\s*מ([^א-ת]|$)`)
	hebrewLtdPattern     = regexp.MustCompile(`(^|[^א-ת])בע\s*מ([^א-ת]|$)`)
	hebrewTotalPattern   = regexp.MustCompile(`סה\s*["״]\s*כ`)

	englishVATPattern = regexp.MustCompile(`(?i)\bV\s*A\s*T\b`)
	englishGSTPattern = regexp.MustCompile(`(?i)\bG\s*S\s*T\b`)
)

// quoteReplacer maps curly and Hebrew quote variants to ASCII and strips
// directional marks; the Hebrew maqaf becomes an ASCII hyphen.
var quoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, // curly double quotes
	"‘", "'", "’", "'", // curly single quotes
	"״", `"`, "׳", "'", // Hebrew gershayim / geresh
	"־", "-", // maqaf
	"‎", "", "‏", "", // LRM / RLM
)

// Normalize canonicalizes raw OCR text. It is a total function: empty or
// whitespace-only input yields the empty string. Normalize is idempotent.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	// 1. Unicode canonical composition (combine diacritics).
	normalized := norm.NFC.String(raw)

	// 2+3. Quote variants, maqaf, directional marks.
	normalized = quoteReplacer.Replace(normalized)

	// 4. Whitespace: collapse space/tab runs, cap blank lines at one.
	normalized = multipleSpacesPattern.ReplaceAllString(normalized, " ")
	normalized = multipleNewlinesPattern.ReplaceAllString(normalized, "\n\n")

	// 5. Hebrew OCR spacing defects in fixed compounds.
	normalized = fixHebrewOCRErrors(normalized)

	// 6. English acronym spacing defects.
	normalized = fixEnglishOCRErrors(normalized)

	return strings.TrimSpace(normalized)
}

func fixHebrewOCRErrors(text string) string {
	text = hebrewVATPattern.ReplaceAllString(text, `${1}מע"מ${2}`)
	text = hebrewCompanyPattern.ReplaceAllString(text, "${1}ח.פ.${2}")
	text = hebrewLtdPattern.ReplaceAllString(text, `${1}בע"מ${2}`)
	text = hebrewDealerPattern.ReplaceAllString(text, "${1}ע.מ.${2}")
	text = hebrewTotalPattern.ReplaceAllString(text, `סה"כ`)
	return text
}

func fixEnglishOCRErrors(text string) string {
	// OCR confusions like O→0 or l→I are context-dependent and left to the
	// individual extractors.
	text = englishVATPattern.ReplaceAllString(text, "VAT")
	text = englishGSTPattern.ReplaceAllString(text, "GST")
	return text
}
