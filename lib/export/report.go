package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"progmap/lib/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const reportFilename = "scraping_report.txt"

// SummaryReport renders the plain text report printed at the end of a
// run and archived next to the data files.
func SummaryReport(results []catalog.Result) string {
	var b strings.Builder
	b.WriteString("Hong Kong Postgraduate Admission Data Scraping Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	total := catalog.TotalProgrammes(results)
	fmt.Fprintf(&b, "Total Universities Attempted: %d\n", len(results))
	fmt.Fprintf(&b, "Successful Scrapes: %d\n", catalog.SuccessCount(results))
	fmt.Fprintf(&b, "Total Programmes Found: %d\n\n", total)

	b.WriteString("Per-University Results:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	for _, result := range results {
		status := "SUCCESS"
		count := len(result.Programmes)
		if !result.Success {
			status = "FAILED"
			count = 0
		}
		fmt.Fprintf(&b, "%s: %s (%d programmes)\n", result.University, status, count)
		if !result.Success && result.Error != "" {
			fmt.Fprintf(&b, "  Error: %s\n", result.Error)
		}
	}
	b.WriteString("\n")

	if total > 0 {
		b.WriteString("Programme Statistics:\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		for _, result := range results {
			if result.Success && len(result.Programmes) > 0 {
				fmt.Fprintf(&b, "%s: %d programmes\n", result.University, len(result.Programmes))
			}
		}
	}

	return b.String()
}

// WriteSummaryReport saves the text report into the output directory.
func (e *Exporter) WriteSummaryReport(ctx context.Context, results []catalog.Result) (string, error) {
	path := e.path(reportFilename)
	err := os.WriteFile(path, []byte(SummaryReport(results)), 0644)
	if err != nil {
		return "", fmt.Errorf("write summary report: %w", err)
	}
	slog.InfoContext(ctx, "generated summary report", "path", path)
	return path, nil
}

// WriteTable renders a compact per-university console table.
func WriteTable(w io.Writer, results []catalog.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"University", "Status", "Programmes", "Error"})

	for _, result := range results {
		status := "SUCCESS"
		if !result.Success {
			status = "FAILED"
		}
		t.AppendRow(table.Row{result.University, status, len(result.Programmes), result.Error})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
