package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Amount patterns tried in order: a currency marker followed by a number,
// then a bare number followed by a magnitude word.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Rs\.?|₹|INR)\s*([\d,]+(?:\.\d+)?)(?:\s*(?:lakhs?|crores?|cr))?`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*(?:lakhs?|crores?|cr)`),
}

// Amount extracts a monetary amount from text, converting lakh/crore
// magnitudes to base currency units. The second return is false when no
// pattern matches or the matched literal does not parse.
func Amount(text string) (float64, bool) {
	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		literal := strings.ReplaceAll(match[1], ",", "")
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			continue
		}

		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "lakh"):
			return value * 100000, true
		case strings.Contains(lower, "cr"):
			return value * 10000000, true
		default:
			return value, true
		}
	}
	return 0, false
}
