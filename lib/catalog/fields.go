package catalog

import (
	"github.com/antzucaro/matchr"

	"progmap/lib/textutil"
)

// Detail field names as used by highlight classification.
const (
	FieldDuration    = "duration"
	FieldFees        = "fees"
	FieldStart       = "start"
	FieldDeadline    = "deadline"
	FieldDescription = "description"
)

// similarityThreshold is the Jaro-Winkler score at which a highlight title
// token is considered a misspelling or variant of a known keyword.
const similarityThreshold = 0.92

var highlightKeywords = []struct {
	field    string
	keywords []string
}{
	{FieldDuration, []string{"duration"}},
	{FieldFees, []string{"fee"}},
	{FieldStart, []string{"start"}},
	{FieldDeadline, []string{"deadline"}},
	{FieldDescription, []string{"description", "overview"}},
}

// ClassifyHighlight maps a detail-page highlight block title onto one of
// the detail fields. Exact keyword containment wins; failing that, each
// title token is fuzzy-matched against the keywords to absorb minor site
// wording drift. Returns ok=false for titles that belong to no field.
func ClassifyHighlight(title string) (field string, ok bool) {
	if textutil.CleanText(title) == "" {
		return "", false
	}

	for _, entry := range highlightKeywords {
		if textutil.MatchKeyword(title, entry.keywords) {
			return entry.field, true
		}
	}

	tokens := textutil.Tokens(title)
	for _, entry := range highlightKeywords {
		for _, keyword := range entry.keywords {
			for _, token := range tokens {
				if matchr.JaroWinkler(token, keyword, false) >= similarityThreshold {
					return entry.field, true
				}
			}
		}
	}

	return "", false
}

// Set fills the named field if it is still empty. Later highlight blocks
// never overwrite earlier ones.
func (h *Highlights) Set(field string, value string) bool {
	switch field {
	case FieldDuration:
		if h.Duration == "" {
			h.Duration = value
			return true
		}
	case FieldFees:
		if h.Fees == "" {
			h.Fees = value
			return true
		}
	case FieldStart:
		if h.Start == "" {
			h.Start = value
			return true
		}
	case FieldDeadline:
		if h.Deadline == "" {
			h.Deadline = value
			return true
		}
	case FieldDescription:
		if h.Description == "" {
			h.Description = value
			return true
		}
	}
	return false
}
