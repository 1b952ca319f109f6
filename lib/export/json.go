package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"progmap/lib/catalog"
)

// The top-level JSON shape is part of the pipeline's contract with its
// consumers, so the key names stay put even where the code says
// "programme" instead of "course".
type exportMetadata struct {
	TotalUniversities int    `json:"total_universities"`
	TotalCourses      int    `json:"total_courses"`
	ExportTimestamp   string `json:"export_timestamp"`
}

type exportDocument struct {
	Metadata     exportMetadata   `json:"metadata"`
	Universities []catalog.Result `json:"universities"`
}

func (e *Exporter) WriteJSON(ctx context.Context, results []catalog.Result, filename string) (string, error) {
	path := e.path(filename)

	document := exportDocument{
		Metadata: exportMetadata{
			TotalUniversities: len(results),
			TotalCourses:      catalog.TotalProgrammes(results),
			ExportTimestamp:   time.Now().Format(time.RFC3339),
		},
		Universities: results,
	}

	buff, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export document: %w", err)
	}
	err = os.WriteFile(path, buff, 0644)
	if err != nil {
		return "", fmt.Errorf("write json: %w", err)
	}

	slog.InfoContext(ctx, "exported json", "path", path, "universities", len(results))
	return path, nil
}
