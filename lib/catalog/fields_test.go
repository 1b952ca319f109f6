package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyHighlight(t *testing.T) {
	cases := []struct {
		title string
		field string
		ok    bool
	}{
		{"Duration", FieldDuration, true},
		{"Programme Duration", FieldDuration, true},
		{"Tuition Fee", FieldFees, true},
		{"Fees", FieldFees, true},
		{"Start Date", FieldStart, true},
		{"Application Deadline", FieldDeadline, true},
		{"Description", FieldDescription, true},
		{"Programme Overview", FieldDescription, true},
		// plural variants still contain the keyword
		{"Durations", FieldDuration, true},
		{"Deadlines", FieldDeadline, true},
		// misspelling only the fuzzy pass catches
		{"Duraton", FieldDuration, true},
		// no field
		{"Mode of Study", "", false},
		{"Intake Quota", "", false},
		{"", "", false},
		{"  \n ", "", false},
	}

	for _, c := range cases {
		field, ok := ClassifyHighlight(c.title)
		require.Equal(t, c.ok, ok, "title=%q", c.title)
		require.Equal(t, c.field, field, "title=%q", c.title)
	}
}

func TestHighlightsFirstFillWins(t *testing.T) {
	var h Highlights

	require.True(t, h.Set(FieldDuration, "1 year full-time"))
	require.False(t, h.Set(FieldDuration, "2 years part-time"))
	require.Equal(t, "1 year full-time", h.Duration)

	require.True(t, h.Set(FieldFees, "HK$180,000"))
	require.True(t, h.Set(FieldStart, "September 2024"))
	require.True(t, h.Set(FieldDeadline, "March 31, 2024"))
	require.True(t, h.Set(FieldDescription, "Advanced training in computer science."))
	require.False(t, h.Set("unknown", "x"))
}
