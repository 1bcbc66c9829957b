package extractor

import "strings"

// zoneCurve maps a match's relative position in [0,1] to a position score.
type zoneCurve func(position float64) float64

// topZone scores 1.0 for matches in the top fraction of the document and
// outside everywhere else.
func topZone(fraction, outside float64) zoneCurve {
	return func(position float64) float64 {
		if position < fraction {
			return 1.0
		}
		return outside
	}
}

// positionScore converts a match offset into a position confidence using the
// field's zone curve. A missing match or empty document scores the neutral
// 0.9.
func positionScore(matchIndex, textLen int, curve zoneCurve) float64 {
	if matchIndex < 0 || textLen == 0 {
		return 0.9
	}
	return curve(float64(matchIndex) / float64(textLen))
}

// isNearKeyword reports whether any keyword occurs within maxDistance bytes
// of matchPos. The comparison is case-insensitive.
func isNearKeyword(text string, matchPos int, keywords []string, maxDistance int) bool {
	start := matchPos - maxDistance
	if start < 0 {
		start = 0
	}
	end := matchPos + maxDistance
	if end > len(text) {
		end = len(text)
	}
	if end <= start {
		return false
	}

	context := strings.ToLower(text[start:end])
	for _, keyword := range keywords {
		if strings.Contains(context, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// contextLines returns the lines surrounding the byte position, linesBefore
// above it and linesAfter below it, joined by newlines.
func contextLines(text string, position, linesBefore, linesAfter int) string {
	lines := strings.Split(text, "\n")
	currentLine := 0
	charCount := 0

	for i, line := range lines {
		charCount += len(line) + 1 // +1 for the newline
		if charCount >= position {
			currentLine = i
			break
		}
	}

	startLine := currentLine - linesBefore
	if startLine < 0 {
		startLine = 0
	}
	endLine := currentLine + linesAfter
	if endLine > len(lines)-1 {
		endLine = len(lines) - 1
	}

	return strings.Join(lines[startLine:endLine+1], "\n")
}
