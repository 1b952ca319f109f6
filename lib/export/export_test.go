package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"progmap/lib/catalog"
	"progmap/lib/telemetry"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResults() []catalog.Result {
	scrapedAt := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	return []catalog.Result{
		{
			University: "University of Hong Kong (HKU)",
			Success:    true,
			Programmes: []catalog.Programme{
				{
					Abbr:       "MSc(CompSc)",
					University: "HKU",
					Faculty:    "Faculty of Engineering",
					Title:      "Master of Science in Computer Science",
					Mode:       "Full-time / Part-time",
					Link:       "https://portal.hku.hk/tpg-admissions/programme/msc-computer-science",
					Duration:   "1 year full-time",
					Fees:       "HK$180,000",
					Start:      "September 2024",
					Deadline:   "March 31, 2024",
				},
				{
					Abbr:       "MSc(DataSci)",
					University: "HKU",
					Faculty:    "Faculty of Science",
					Title:      "Master of Science in Data Science",
					Mode:       "Full-time",
					Link:       "https://portal.hku.hk/tpg-admissions/programme/msc-data-science",
				},
			},
			ScrapedAt: scrapedAt,
		},
		{
			University: "Chinese University of Hong Kong (CUHK)",
			Success:    false,
			Programmes: []catalog.Programme{},
			Error:      "listing timed out",
			ScrapedAt:  scrapedAt,
		},
	}
}

func newTestExporter(t testing.TB) *Exporter {
	e, err := NewExporter(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestWriteCSV(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:export")
	defer cleanup()

	e := newTestExporter(t)
	path, err := e.WriteCSV(context.Background(), sampleResults(), "programmes.csv")
	if err != nil {
		t.Fatal(err)
	}

	buff, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(buff)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 4)
	require.Equal(
		t,
		"abbr,university,faculty,title,mode,link,duration,fees,start,deadline,description,scraped_at",
		lines[0],
	)
	require.Contains(t, content, "MSc(CompSc)")
	// the failed university still shows up as a marker row
	require.Contains(t, content, "SCRAPING_FAILED: listing timed out")
}

func TestWriteCSVNoResults(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:export")
	defer cleanup()

	e := newTestExporter(t)
	path, err := e.WriteCSV(context.Background(), nil, "empty.csv")
	if err != nil {
		t.Fatal(err)
	}

	buff, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(buff)), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "abbr,"))
}

func TestWriteJSON(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:export")
	defer cleanup()

	e := newTestExporter(t)
	path, err := e.WriteJSON(context.Background(), sampleResults(), "programmes.json")
	if err != nil {
		t.Fatal(err)
	}

	buff, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var document struct {
		Metadata struct {
			TotalUniversities int    `json:"total_universities"`
			TotalCourses      int    `json:"total_courses"`
			ExportTimestamp   string `json:"export_timestamp"`
		} `json:"metadata"`
		Universities []struct {
			University string            `json:"university"`
			Success    bool              `json:"success"`
			Courses    []json.RawMessage `json:"courses"`
			Error      string            `json:"error_message"`
		} `json:"universities"`
	}
	err = json.Unmarshal(buff, &document)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 2, document.Metadata.TotalUniversities)
	// failed universities do not count towards the course total
	require.Equal(t, 2, document.Metadata.TotalCourses)
	require.NotEmpty(t, document.Metadata.ExportTimestamp)

	require.Len(t, document.Universities, 2)
	require.True(t, document.Universities[0].Success)
	require.Len(t, document.Universities[0].Courses, 2)
	require.False(t, document.Universities[1].Success)
	require.Empty(t, document.Universities[1].Courses)
	require.Equal(t, "listing timed out", document.Universities[1].Error)
}

func TestWriteExcel(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:export")
	defer cleanup()

	e := newTestExporter(t)
	path, err := e.WriteExcel(context.Background(), sampleResults(), "programmes.xlsx")
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Summary")
	require.Contains(t, sheets, "All Programmes")
	require.Contains(t, sheets, "University_of_Hong_Kong_HKU")
	// the failed university gets a summary row but no sheet of its own
	require.NotContains(t, sheets, "Chinese_University_of_Hong_Kong")

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, summary, 3)
	require.Equal(t, "University", summary[0][0])
	require.Equal(t, "University of Hong Kong (HKU)", summary[1][0])
	require.Equal(t, "listing timed out", summary[2][3])

	all, err := f.GetRows("All Programmes")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, all, 3)

	hku, err := f.GetRows("University_of_Hong_Kong_HKU")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, hku, 3)
	require.Equal(t, "MSc(CompSc)", hku[1][0])
}

func TestExportAll(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:export")
	defer cleanup()

	e := newTestExporter(t)
	files := e.ExportAll(context.Background(), sampleResults(), "programmes", []string{FormatAll})

	require.Len(t, files, 3)
	for _, path := range files {
		_, err := os.Stat(path)
		require.NoError(t, err)
	}
}

func TestExportAllSubset(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:export")
	defer cleanup()

	e := newTestExporter(t)
	files := e.ExportAll(context.Background(), sampleResults(), "programmes", []string{FormatCSV})

	require.Len(t, files, 1)
	require.Contains(t, files, FormatCSV)
}

func TestSummaryReport(t *testing.T) {
	report := SummaryReport(sampleResults())

	require.Contains(t, report, "Total Universities Attempted: 2")
	require.Contains(t, report, "Successful Scrapes: 1")
	require.Contains(t, report, "Total Programmes Found: 2")
	require.Contains(t, report, "University of Hong Kong (HKU): SUCCESS (2 programmes)")
	require.Contains(t, report, "Chinese University of Hong Kong (CUHK): FAILED (0 programmes)")
	require.Contains(t, report, "  Error: listing timed out")
}

func TestWriteTable(t *testing.T) {
	var buff bytes.Buffer
	WriteTable(&buff, sampleResults())

	out := buff.String()
	require.Contains(t, out, "UNIVERSITY")
	require.Contains(t, out, "SUCCESS")
	require.Contains(t, out, "FAILED")
}

func TestSheetName(t *testing.T) {
	testCases := []struct {
		university string
		expected   string
	}{
		{"University of Hong Kong (HKU)", "University_of_Hong_Kong_HKU"},
		{"Chinese University of Hong Kong (CUHK)", "Chinese_University_of_Hong_Kong"},
		{"HKU", "HKU"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, sheetName(test.university))
		require.LessOrEqual(t, len(sheetName(test.university)), maxSheetNameLength)
	}
}
