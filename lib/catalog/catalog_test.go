package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStructurallyEmpty(t *testing.T) {
	require.True(t, Programme{
		University: "HKU",
		Link:       "https://portal.hku.hk/tpg-admissions/programme/msc-comp",
	}.StructurallyEmpty())

	require.False(t, Programme{Title: "Master of Science in Computer Science"}.StructurallyEmpty())
	require.False(t, Programme{Abbr: "MSc(CompSc)"}.StructurallyEmpty())
	require.False(t, Programme{Mode: "Full-time"}.StructurallyEmpty())
}

func TestFillProgramme(t *testing.T) {
	p := Programme{
		Abbr:       "MSc(CompSc)",
		University: "HKU",
		Title:      "Master of Science in Computer Science",
		Link:       "https://portal.hku.hk/tpg-admissions/programme/msc-comp",
	}
	h := Highlights{
		Duration: "1 year full-time",
		Fees:     "HK$180,000",
		Deadline: "March 31",
	}
	h.FillProgramme(&p)

	require.Equal(t, "1 year full-time", p.Duration)
	require.Equal(t, "HK$180,000", p.Fees)
	require.Equal(t, "March 31", p.Deadline)
	require.Equal(t, "", p.Start)
	require.Equal(t, "MSc(CompSc)", p.Abbr)
}

func TestResultCounts(t *testing.T) {
	now := time.Now()
	results := []Result{
		{
			University: "HKU",
			Success:    true,
			Programmes: []Programme{{Title: "a"}, {Title: "b"}},
			ScrapedAt:  now,
		},
		{
			University: "CUHK",
			Success:    false,
			Error:      "listing fetch failed",
			ScrapedAt:  now,
		},
		{
			University: "PolyU",
			Success:    true,
			Programmes: []Programme{{Title: "c"}},
			ScrapedAt:  now,
		},
	}

	require.Equal(t, 3, TotalProgrammes(results))
	require.Equal(t, 2, SuccessCount(results))
}
