package extractor

import (
	"regexp"
	"strings"

	"invocr/internal/validator"
)

var (
	businessIDCompanyPattern = regexp.MustCompile(
		`(?i)(?:ח\.פ\.|ח״פ|חפ)\s*[:\-]?\s*([\d\-]{8,10})`)
	businessIDDealerPattern = regexp.MustCompile(
		`(?i)(?:ע\.מ\.|עוסק\s*מורשה|ע״מ)\s*[:\-]?\s*([\d\-]{8,10})`)
	businessIDPartnershipPattern = regexp.MustCompile(
		`(?i)(?:ע\.פ\.|עוסק\s*פטור)\s*[:\-]?\s*([\d\-]{8,10})`)
	businessIDVATNumberPattern = regexp.MustCompile(
		`(?i)(?:VAT\s*(?:No|Number|ID)|מע["״]מ\s*(?:מס|מספר))\s*[:\-]?\s*([\d\-]{8,12})`)
	businessIDGenericPattern = regexp.MustCompile(
		`(?i)(?:Company\s*ID|Tax\s*ID|Business\s*ID|Company\s*No)\s*[:\-]?\s*([\d\-]{8,12})`)
	businessIDStandalonePattern = regexp.MustCompile(
		`\b(\d{9})\b`)
)

var businessIDZone = topZone(0.4, 0.85)

type businessIDRule struct {
	re       *regexp.Regexp
	name     string
	priority float64
}

var businessIDCascade = []businessIDRule{
	{businessIDCompanyPattern, "Priority1_CompanyNumber", 1.0},
	{businessIDDealerPattern, "Priority2_LicensedDealer", 1.0},
	{businessIDPartnershipPattern, "Priority3_Partnership", 1.0},
	{businessIDVATNumberPattern, "Priority4_VATNumber", 0.95},
	{businessIDGenericPattern, "Priority5_GenericID", 0.9},
	{businessIDStandalonePattern, "Priority6_StandaloneID", 0.6},
}

// acceptableBusinessIDConfidence stops the cascade: the first candidate that
// reaches it wins. Sub-threshold candidates are kept but the loop also tries
// the remaining lower-priority rules, so a later rule can displace an
// earlier, weaker match.
const acceptableBusinessIDConfidence = 0.6

// BusinessIDExtractor finds the Israeli business tax identifier. Checksum
// failure on 8-9 digit candidates lowers confidence rather than rejecting;
// longer foreign-format IDs (10-12 digits) skip the checksum entirely.
type BusinessIDExtractor struct{}

func (e BusinessIDExtractor) FieldName() string { return "BusinessId" }

func (e BusinessIDExtractor) Extract(normalizedText string) Result[string] {
	var result Result[string]
	result.Factors = NewFactors()

	if strings.TrimSpace(normalizedText) == "" {
		return result
	}

	for _, rule := range businessIDCascade {
		loc := rule.re.FindStringSubmatchIndex(normalizedText)
		if loc == nil {
			continue
		}

		normalized := validator.NormalizeBusinessID(normalizedText[loc[2]:loc[3]])
		if len(normalized) < 8 || len(normalized) > 12 {
			continue
		}

		confidenceMultiplier := 1.0
		if len(normalized) == 9 || len(normalized) == 8 {
			if !validator.ValidateIsraeliBusinessID(normalized) {
				confidenceMultiplier = 0.7
			}
		}

		result.Value = &normalized
		result.PatternUsed = rule.name
		result.Factors.PatternPriority = rule.priority * confidenceMultiplier
		result.Factors.PositionScore = positionScore(loc[0], len(normalizedText), businessIDZone)
		result.Confidence = result.Factors.Overall()

		if result.Confidence >= acceptableBusinessIDConfidence {
			return result
		}
	}

	return result
}
