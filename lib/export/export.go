// Package export writes scrape results to the formats downstream
// consumers expect: CSV and JSON documents, a multi-sheet Excel
// workbook and a plain text summary report.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"progmap/lib/catalog"
)

const DefaultBaseName = "hk_tpg_programmes"

// Formats recognized by ExportAll. "all" expands to every other entry.
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatExcel = "excel"
	FormatAll   = "all"
)

func KnownFormat(format string) bool {
	switch format {
	case FormatCSV, FormatJSON, FormatExcel, FormatAll:
		return true
	}
	return false
}

type Exporter struct {
	dir string
}

// NewExporter creates the output directory if it does not exist yet.
func NewExporter(dir string) (*Exporter, error) {
	if dir == "" {
		dir = "output"
	}
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Exporter{dir: dir}, nil
}

func (e *Exporter) Dir() string {
	return e.dir
}

func (e *Exporter) path(filename string) string {
	return filepath.Join(e.dir, filename)
}

// ExportAll writes the requested subset of formats under a shared base
// name. A failing format is logged and does not stop the others; the
// returned map holds the files that did land.
func (e *Exporter) ExportAll(ctx context.Context, results []catalog.Result, base string, formats []string) map[string]string {
	if base == "" {
		base = DefaultBaseName
	}
	if len(formats) == 0 || slices.Contains(formats, FormatAll) {
		formats = []string{FormatJSON, FormatCSV, FormatExcel}
	}

	files := map[string]string{}
	for _, format := range formats {
		var path string
		var err error
		switch format {
		case FormatJSON:
			path, err = e.WriteJSON(ctx, results, base+".json")
		case FormatCSV:
			path, err = e.WriteCSV(ctx, results, base+".csv")
		case FormatExcel:
			path, err = e.WriteExcel(ctx, results, base+".xlsx")
		default:
			slog.WarnContext(ctx, "skipping unknown export format", "format", format)
			continue
		}
		if err != nil {
			slog.ErrorContext(ctx, "export format failed", "format", format, "err", err)
			continue
		}
		files[format] = path
	}
	return files
}

func programmeRow(p catalog.Programme) []interface{} {
	return []interface{}{
		p.Abbr,
		p.University,
		p.Faculty,
		p.Title,
		p.Mode,
		p.Link,
		p.Duration,
		p.Fees,
		p.Start,
		p.Deadline,
		p.Description,
	}
}

func programmeHeader() []interface{} {
	return []interface{}{
		"abbr",
		"university",
		"faculty",
		"title",
		"mode",
		"link",
		"duration",
		"fees",
		"start",
		"deadline",
		"description",
	}
}
