package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CleanText folds newlines and runs of whitespace into single spaces and
// trims the result.
func CleanText(s string) string {
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

func NormalizeTitle(title string) string {
	return strings.ToLower(CleanText(title))
}

func MatchKeyword(title string, keywords []string) bool {
	title = NormalizeTitle(title)
	for _, k := range keywords {
		if strings.Contains(title, k) {
			return true
		}
	}
	return false
}

func Tokens(s string) []string {
	return strings.Fields(NormalizeTitle(s))
}
