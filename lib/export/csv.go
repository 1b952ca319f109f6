package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"progmap/lib/catalog"

	"github.com/gocarina/gocsv"
)

// FailedMarker prefixes the title column of a placeholder row written
// for a university whose crawl failed.
const FailedMarker = "SCRAPING_FAILED: "

type csvRow struct {
	catalog.Programme
	ScrapedAt string `csv:"scraped_at"`
}

// WriteCSV flattens all results into a single CSV. Failed universities
// contribute one marker row each so a consumer scanning the file can
// tell a failed crawl apart from an empty one. No results at all still
// writes the header row.
func (e *Exporter) WriteCSV(ctx context.Context, results []catalog.Result, filename string) (string, error) {
	path := e.path(filename)

	rows := []*csvRow{}
	for _, result := range results {
		scrapedAt := result.ScrapedAt.Format(time.RFC3339)
		if !result.Success {
			rows = append(rows, &csvRow{
				Programme: catalog.Programme{
					University: result.University,
					Title:      FailedMarker + result.Error,
				},
				ScrapedAt: scrapedAt,
			})
			continue
		}
		for _, programme := range result.Programmes {
			rows = append(rows, &csvRow{Programme: programme, ScrapedAt: scrapedAt})
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer out.Close()

	err = gocsv.MarshalFile(&rows, out)
	if err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}

	slog.InfoContext(ctx, "exported csv", "path", path, "rows", len(rows))
	return path, nil
}
