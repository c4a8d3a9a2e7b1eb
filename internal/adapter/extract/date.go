package extract

import "regexp"

// Date patterns: numeric D/M/Y with slash or hyphen separators, then
// "D Month Y" with a three-letter (or longer) month abbreviation.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
	regexp.MustCompile(`(?i)\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4}`),
}

// Date returns the first date-shaped substring found in text, verbatim.
// No calendar validation is performed.
func Date(text string) (string, bool) {
	for _, pattern := range datePatterns {
		if match := pattern.FindString(text); match != "" {
			return match, true
		}
	}
	return "", false
}
