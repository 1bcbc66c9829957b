package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// IsraelVATRate is the statutory Israeli VAT rate used for fallback
// derivation when only the gross total was found.
const IsraelVATRate = 0.17

const (
	currencyPrefix = `(?:₪|NIS|\$|USD|ILS|EUR|€)?`
	currencySuffix = `(?:USD|NIS|ILS|EUR)?`
	amountGroup    = `([\d,]+\.?\d{0,2})`
)

// Total (after-VAT) patterns.
var (
	totalExplicitDuePattern = regexp.MustCompile(
		`(?i)(?:Total\s*Due|Total\s*Amount|Grand\s*Total|Amount\s*Due)\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	totalHebrewPattern = regexp.MustCompile(
		`(?i)(?:סה["״']כ\s*לתשלום|סה["״']כ|סכום\s*כולל)\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	totalIncludingVATPattern = regexp.MustCompile(
		`(?i)(?:Total\s*(?:including|incl\.?)\s*VAT|כולל\s*מע["״']מ)\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	totalFinalPricePattern = regexp.MustCompile(
		`(?i)(?:Final\s*Price|Total\s*Price|Price)\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	totalGenericCurrencyPattern = regexp.MustCompile(
		`(?i)[\$₪€]\s*([\d,]+\.\d{2})\s*` + currencySuffix)
)

// Before-VAT patterns.
var (
	beforeVATExplicitPattern = regexp.MustCompile(
		`(?i)(?:Amount\s*)?(?:Before|excl\.?|excluding)\s*VAT\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	beforeVATHebrewPattern = regexp.MustCompile(
		`(?i)(?:סכום\s*)?לפני\s*מע["״']מ\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	beforeVATSubtotalPattern = regexp.MustCompile(
		`(?i)(?:Subtotal|Sub-Total|סכום\s*ביניים)\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	beforeVATNetPattern = regexp.MustCompile(
		`(?i)(?:Net\s*Amount|Net|נטו)\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
)

// VAT patterns. The first two carry an optional percentage group, so the
// amount lives in group 2.
var (
	vatWithPercentagePattern = regexp.MustCompile(
		`(?i)VAT\s*\((\d+)%\)\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	vatHebrewPattern = regexp.MustCompile(
		`(?i)מע["״']מ\s*(?:\((\d+)%\))?\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	vatGenericTaxPattern = regexp.MustCompile(
		`(?i)(?:Tax|Sales\s*Tax|GST)\s*[:\-]?\s*` + currencyPrefix + `\s*` + amountGroup + `\s*` + currencySuffix)
	vatHebrewReversedPattern = regexp.MustCompile(
		`(?i)([\d,]+\.?\d{0,2})\s*(?:₪|NIS|\$|USD|ILS|EUR|€)?\s*מע["״']מ`)
	vatEnglishReversedPattern = regexp.MustCompile(
		`(?i)([\d,]+\.?\d{0,2})\s*(?:₪|NIS|\$|USD|ILS|EUR|€)?\s*VAT`)
)

type amountRule struct {
	re       *regexp.Regexp
	name     string
	priority float64
	group    int
}

var totalCascade = []amountRule{
	{totalExplicitDuePattern, "Total_ExplicitDue", 1.0, 1},
	{totalHebrewPattern, "Total_Hebrew", 1.0, 1},
	{totalIncludingVATPattern, "Total_IncludingVAT", 1.0, 1},
	{totalFinalPricePattern, "Total_FinalPrice", 0.95, 1},
	{totalGenericCurrencyPattern, "Total_GenericCurrency", 0.7, 1},
}

var vatCascade = []amountRule{
	{vatWithPercentagePattern, "VAT_WithPercentage", 1.0, 2},
	{vatHebrewPattern, "VAT_Hebrew", 1.0, 2},
	{vatGenericTaxPattern, "VAT_GenericTax", 0.95, 1},
	{vatHebrewReversedPattern, "VAT_HebrewReversed", 0.9, 1},
	{vatEnglishReversedPattern, "VAT_EnglishReversed", 0.9, 1},
}

var beforeVATCascade = []amountRule{
	{beforeVATExplicitPattern, "BeforeVAT_Explicit", 1.0, 1},
	{beforeVATHebrewPattern, "BeforeVAT_Hebrew", 1.0, 1},
	{beforeVATSubtotalPattern, "BeforeVAT_Subtotal", 0.9, 1},
	{beforeVATNetPattern, "BeforeVAT_Net", 0.9, 1},
}

// MonetaryAmounts holds the three interdependent monetary extractions.
type MonetaryAmounts struct {
	Total     Result[float64]
	VAT       Result[float64]
	BeforeVAT Result[float64]
}

// AmountExtractor extracts the gross total, the VAT amount and the net
// amount, deriving missing ones from the 17% rate and cross-checking the
// arithmetic afterwards.
type AmountExtractor struct{}

func (e AmountExtractor) FieldName() string { return "Amounts" }

// ExtractAmounts runs the three cascades in dependency order (total informs
// VAT informs before-VAT), then the fallback derivations, then the
// consistency check.
func (e AmountExtractor) ExtractAmounts(normalizedText string) MonetaryAmounts {
	amounts := MonetaryAmounts{
		Total:     emptyAmountResult(),
		VAT:       emptyAmountResult(),
		BeforeVAT: emptyAmountResult(),
	}

	if strings.TrimSpace(normalizedText) == "" {
		return amounts
	}

	amounts.Total = e.extractTotal(normalizedText)
	amounts.VAT = e.extractVAT(normalizedText, amounts.Total.Value)
	amounts.BeforeVAT = e.extractBeforeVAT(normalizedText)

	e.applyFallbacks(&amounts)
	e.validateConsistency(&amounts)

	return amounts
}

func emptyAmountResult() Result[float64] {
	return Result[float64]{Factors: NewFactors()}
}

func (e AmountExtractor) extractTotal(text string) Result[float64] {
	for _, rule := range totalCascade {
		loc := rule.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		amount := parseAmount(text[loc[2*rule.group]:loc[2*rule.group+1]])
		if amount == nil || !isValidAmount(*amount) {
			continue
		}

		// Totals live at the bottom of the document.
		position := totalPositionScore(loc[0], len(text))
		result := Result[float64]{
			Value:       amount,
			PatternUsed: rule.name,
			Factors:     NewFactors(),
			Confidence:  rule.priority * position,
		}
		result.Factors.PatternPriority = rule.priority
		result.Factors.PositionScore = position
		return result
	}

	return emptyAmountResult()
}

func (e AmountExtractor) extractVAT(text string, total *float64) Result[float64] {
	for _, rule := range vatCascade {
		loc := rule.re.FindStringSubmatchIndex(text)
		if loc == nil || loc[2*rule.group] < 0 {
			continue
		}

		amount := parseAmount(text[loc[2*rule.group]:loc[2*rule.group+1]])
		if amount == nil || !isValidAmount(*amount) {
			continue
		}

		// Penalize candidates that disagree with the rate-implied VAT.
		confidenceMultiplier := 1.0
		if total != nil {
			expectedVAT := *total * IsraelVATRate / (1 + IsraelVATRate)
			if expectedVAT > 0 && math.Abs(*amount-expectedVAT)/expectedVAT > 0.05 {
				confidenceMultiplier = 0.8
			}
		}

		result := Result[float64]{
			Value:       amount,
			PatternUsed: rule.name,
			Factors:     NewFactors(),
			Confidence:  rule.priority * confidenceMultiplier * 0.9,
		}
		result.Factors.PatternPriority = rule.priority * confidenceMultiplier
		result.Factors.PositionScore = 0.9
		return result
	}

	return emptyAmountResult()
}

func (e AmountExtractor) extractBeforeVAT(text string) Result[float64] {
	for _, rule := range beforeVATCascade {
		loc := rule.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		amount := parseAmount(text[loc[2*rule.group]:loc[2*rule.group+1]])
		if amount == nil || !isValidAmount(*amount) {
			continue
		}

		result := Result[float64]{
			Value:       amount,
			PatternUsed: rule.name,
			Factors:     NewFactors(),
			Confidence:  rule.priority * 0.9,
		}
		result.Factors.PatternPriority = rule.priority
		result.Factors.PositionScore = 0.9
		return result
	}

	return emptyAmountResult()
}

// applyFallbacks derives the missing amounts: before-VAT from total−VAT, or
// both VAT and before-VAT from the 17% rate when only the total was found.
func (e AmountExtractor) applyFallbacks(amounts *MonetaryAmounts) {
	if amounts.Total.IsSuccess() && amounts.VAT.IsSuccess() && !amounts.BeforeVAT.IsSuccess() {
		total, vat := *amounts.Total.Value, *amounts.VAT.Value
		beforeVAT := total - vat

		if isValidAmount(beforeVAT) {
			confidence := math.Min(amounts.Total.Confidence, amounts.VAT.Confidence) * 0.95
			amounts.BeforeVAT = Result[float64]{
				Value:       &beforeVAT,
				PatternUsed: "Calculated_TotalMinusVAT",
				Factors:     NewFactors(),
				Confidence:  confidence,
			}
			amounts.BeforeVAT.Factors.PatternPriority = confidence
		}
	}

	if amounts.Total.IsSuccess() && !amounts.VAT.IsSuccess() {
		total := *amounts.Total.Value
		vat := total * IsraelVATRate / (1 + IsraelVATRate)
		beforeVAT := total - vat
		confidence := amounts.Total.Confidence * 0.7

		amounts.VAT = Result[float64]{
			Value:       &vat,
			PatternUsed: "Calculated_17PercentVAT",
			Factors:     NewFactors(),
			Confidence:  confidence,
		}
		amounts.VAT.Factors.PatternPriority = confidence

		amounts.BeforeVAT = Result[float64]{
			Value:       &beforeVAT,
			PatternUsed: "Calculated_TotalMinusVAT",
			Factors:     NewFactors(),
			Confidence:  confidence,
		}
		amounts.BeforeVAT.Factors.PatternPriority = confidence
	}
}

// validateConsistency recomputes every confidence through the factor formula
// with a 0.8 cross-field score when before-VAT + VAT drifts more than 1%
// from the extracted total.
func (e AmountExtractor) validateConsistency(amounts *MonetaryAmounts) {
	if !amounts.Total.IsSuccess() || !amounts.VAT.IsSuccess() || !amounts.BeforeVAT.IsSuccess() {
		return
	}

	total := *amounts.Total.Value
	calculatedTotal := *amounts.BeforeVAT.Value + *amounts.VAT.Value
	if total == 0 {
		return
	}

	if math.Abs(total-calculatedTotal)/total > 0.01 {
		amounts.Total.Factors.CrossFieldValidation = 0.8
		amounts.VAT.Factors.CrossFieldValidation = 0.8
		amounts.BeforeVAT.Factors.CrossFieldValidation = 0.8

		amounts.Total.Confidence = amounts.Total.Factors.Overall()
		amounts.VAT.Confidence = amounts.VAT.Factors.Overall()
		amounts.BeforeVAT.Confidence = amounts.BeforeVAT.Factors.Overall()
	}
}

// parseAmount strips thousands separators and parses an invariant decimal.
// Malformed candidates return nil and the cascade moves on.
func parseAmount(value string) *float64 {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	normalized := strings.ReplaceAll(value, ",", "")
	parsed, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// isValidAmount bounds plausible invoice amounts to (0, 1,000,000).
func isValidAmount(amount float64) bool {
	return amount > 0 && amount < 1_000_000
}

// totalPositionScore rewards totals found in the bottom 30% of the document.
func totalPositionScore(matchIndex, textLen int) float64 {
	if textLen == 0 {
		return 0.8
	}
	if float64(matchIndex)/float64(textLen) > 0.7 {
		return 1.0
	}
	return 0.8
}
