package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthNameAlternation = `January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec`

var (
	dateLabelPattern = regexp.MustCompile(
		`(?i)(?:תאריך|date)\s*[:\-]?\s*(\d{1,2})[\/\.\-](\d{1,2})[\/\.\-](\d{2,4})`)
	dateIsraeliPattern = regexp.MustCompile(
		`\b(\d{1,2})[\/\.](\d{1,2})[\/\.](\d{4})\b`)
	dateISOPattern = regexp.MustCompile(
		`\b(\d{4})[\/\-](\d{1,2})[\/\-](\d{1,2})\b`)
	dateCompactPattern = regexp.MustCompile(
		`\b(\d{2})(\d{2})(\d{4})\b`)
	dateMonthNameFirstPattern = regexp.MustCompile(
		`(?i)\b(?:` + monthNameAlternation + `)\s+(\d{1,2})\s*,?\s*(\d{4})\b`)
	dateDayMonthNamePattern = regexp.MustCompile(
		`(?i)\b(\d{1,2})\s+(?:` + monthNameAlternation + `)\s+(\d{4})\b`)
)

// monthsByName is ordered long-form first so containment lookups on the
// matched text resolve before their abbreviations.
var monthsByName = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"august", time.August}, {"september", time.September},
	{"october", time.October}, {"november", time.November}, {"december", time.December},
	{"june", time.June}, {"july", time.July},
	{"jan", time.January}, {"feb", time.February}, {"mar", time.March},
	{"apr", time.April}, {"may", time.May}, {"jun", time.June}, {"jul", time.July},
	{"aug", time.August}, {"sept", time.September}, {"sep", time.September},
	{"oct", time.October}, {"nov", time.November}, {"dec", time.December},
}

var dateZone = topZone(0.4, 0.85)

type dateRule struct {
	re        *regexp.Regexp
	name      string
	priority  float64
	iso       bool
	monthName bool
}

// dateCascade is the try-order: explicit label, month-name forms, Israeli
// day-first, ISO, compact. ISO carries full priority but is tried after the
// day-first form because bare DD/MM is the far more common layout here.
var dateCascade = []dateRule{
	{dateLabelPattern, "Priority1_ExplicitLabel", 1.0, false, false},
	{dateMonthNameFirstPattern, "Priority5_MonthNameFirst", 0.98, false, true},
	{dateDayMonthNamePattern, "Priority6_DayMonthName", 0.98, false, true},
	{dateIsraeliPattern, "Priority2_IsraeliFormat", 0.9, false, false},
	{dateISOPattern, "Priority3_ISOFormat", 1.0, true, false},
	{dateCompactPattern, "Priority4_CompactFormat", 0.8, false, false},
}

// DateExtractor finds the transaction date. Ambiguous DD/MM vs MM/DD is
// resolved day-first unless one part exceeds 12; results outside
// [2000-01-01, now+1y] are rejected and the cascade moves on.
type DateExtractor struct{}

func (e DateExtractor) FieldName() string { return "TransactionDate" }

func (e DateExtractor) Extract(normalizedText string) Result[time.Time] {
	var result Result[time.Time]
	result.Factors = NewFactors()

	if strings.TrimSpace(normalizedText) == "" {
		return result
	}

	for _, rule := range dateCascade {
		loc := rule.re.FindStringSubmatchIndex(normalizedText)
		if loc == nil {
			continue
		}

		var parsed *time.Time
		if rule.monthName {
			matched := normalizedText[loc[0]:loc[1]]
			parsed = parseDateWithMonthName(
				extractMonthName(matched),
				normalizedText[loc[2]:loc[3]],
				normalizedText[loc[4]:loc[5]],
			)
		} else {
			parsed = parseDateParts(
				normalizedText[loc[2]:loc[3]],
				normalizedText[loc[4]:loc[5]],
				normalizedText[loc[6]:loc[7]],
				rule.iso,
			)
		}

		if parsed == nil || !isValidInvoiceDate(*parsed) {
			continue
		}

		result.Value = parsed
		result.PatternUsed = rule.name
		result.Factors.PatternPriority = rule.priority
		result.Factors.PositionScore = positionScore(loc[0], len(normalizedText), dateZone)
		result.Confidence = result.Factors.Overall()

		return result
	}

	return result
}

func parseDateParts(part1, part2, part3 string, iso bool) *time.Time {
	first, err1 := strconv.Atoi(part1)
	second, err2 := strconv.Atoi(part2)
	third, err3 := strconv.Atoi(part3)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}

	var year, month, day int
	if iso {
		year, month, day = first, second, third
	} else {
		year = third
		if year < 100 {
			year += 2000
		}

		switch {
		case first > 12 && second <= 12:
			day, month = first, second
		case second > 12 && first <= 12:
			day, month = second, first
		default:
			// Israeli day-first convention.
			day, month = first, second
		}

		if first > 31 && first > 1900 {
			year, month, day = first, second, third
		}
	}

	return buildDate(year, month, day)
}

func parseDateWithMonthName(monthName, part1, part2 string) *time.Time {
	month := 0
	for _, m := range monthsByName {
		if m.name == monthName {
			month = int(m.month)
			break
		}
	}
	if month == 0 {
		return nil
	}

	val1, err1 := strconv.Atoi(part1)
	val2, err2 := strconv.Atoi(part2)
	if err1 != nil || err2 != nil {
		return nil
	}

	var day, year int
	switch {
	case val1 > 31:
		year, day = val1, val2
	case val2 > 31:
		year, day = val2, val1
	case val2 > 2000 || val2 > val1:
		year, day = val2, val1
	default:
		year, day = val1, val2
	}

	return buildDate(year, month, day)
}

func buildDate(year, month, day int) *time.Time {
	if year < 1900 || year > 2100 {
		return nil
	}
	if month < 1 || month > 12 {
		return nil
	}
	if day < 1 || day > 31 {
		return nil
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 30 → Mar 2); reject those.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return nil
	}
	return &date
}

func extractMonthName(matched string) string {
	lower := strings.ToLower(matched)
	for _, m := range monthsByName {
		if strings.Contains(lower, m.name) {
			return m.name
		}
	}
	return ""
}

func isValidInvoiceDate(date time.Time) bool {
	minDate := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDate := time.Now().AddDate(1, 0, 0)
	return !date.Before(minDate) && !date.After(maxDate)
}
