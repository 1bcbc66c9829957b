// Package validator holds stateless field validators shared by the
// extraction pipeline.
package validator

import "regexp"

var nonDigitPattern = regexp.MustCompile(`[^\d]`)

// NormalizeBusinessID strips every non-digit character from a business ID.
func NormalizeBusinessID(id string) string {
	if id == "" {
		return ""
	}
	return nonDigitPattern.ReplaceAllString(id, "")
}

// ValidateIsraeliBusinessID reports whether id is a checksum-valid Israeli
// business identifier (ח.פ. / ע.מ. / ע.פ.). IDs are 9 digits; older 8-digit
// IDs are padded with a leading zero before the check. The checksum is the
// Luhn-like weighted digit sum: digit i is multiplied by (i%2)+1, products
// above 9 have 9 subtracted, and the total must divide by 10.
func ValidateIsraeliBusinessID(id string) bool {
	normalized := NormalizeBusinessID(id)

	if len(normalized) != 9 && len(normalized) != 8 {
		return false
	}
	if len(normalized) == 8 {
		normalized = "0" + normalized
	}

	sum := 0
	for i := 0; i < 9; i++ {
		digit := int(normalized[i] - '0')
		multiplied := digit * ((i % 2) + 1)
		if multiplied > 9 {
			multiplied -= 9
		}
		sum += multiplied
	}

	return sum%10 == 0
}
