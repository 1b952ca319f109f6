package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"progmap/lib/catalog"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet       = "Summary"
	allProgrammesSheet = "All Programmes"

	// hard limit imposed by the xlsx format
	maxSheetNameLength = 31
)

// WriteExcel writes one workbook with a summary sheet, a combined
// programme sheet and one sheet per successfully scraped university.
func (e *Exporter) WriteExcel(ctx context.Context, results []catalog.Result, filename string) (string, error) {
	path := e.path(filename)

	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", summarySheet)
	if err != nil {
		return "", err
	}
	err = writeSummarySheet(f, results)
	if err != nil {
		return "", fmt.Errorf("write summary sheet: %w", err)
	}

	err = writeAllProgrammesSheet(f, results)
	if err != nil {
		return "", fmt.Errorf("write combined sheet: %w", err)
	}

	for _, result := range results {
		if !result.Success || len(result.Programmes) == 0 {
			continue
		}
		err = writeUniversitySheet(f, result)
		if err != nil {
			return "", fmt.Errorf("write sheet for %q: %w", result.University, err)
		}
	}

	err = f.SaveAs(path)
	if err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	slog.InfoContext(ctx, "exported excel workbook", "path", path)
	return path, nil
}

func writeSummarySheet(f *excelize.File, results []catalog.Result) error {
	rows := [][]interface{}{
		{"University", "Success", "Programmes Found", "Error Message", "Scraped At"},
	}
	for _, result := range results {
		found := 0
		if result.Success {
			found = len(result.Programmes)
		}
		rows = append(rows, []interface{}{
			result.University,
			result.Success,
			found,
			result.Error,
			result.ScrapedAt.Format(time.RFC3339),
		})
	}
	return writeRows(f, summarySheet, rows)
}

func writeAllProgrammesSheet(f *excelize.File, results []catalog.Result) error {
	rows := [][]interface{}{
		append(programmeHeader(), "scraped_at"),
	}
	for _, result := range results {
		if !result.Success {
			continue
		}
		for _, programme := range result.Programmes {
			rows = append(rows, append(programmeRow(programme), result.ScrapedAt.Format(time.RFC3339)))
		}
	}
	if len(rows) == 1 {
		return nil
	}

	_, err := f.NewSheet(allProgrammesSheet)
	if err != nil {
		return err
	}
	return writeRows(f, allProgrammesSheet, rows)
}

func writeUniversitySheet(f *excelize.File, result catalog.Result) error {
	rows := [][]interface{}{programmeHeader()}
	for _, programme := range result.Programmes {
		rows = append(rows, programmeRow(programme))
	}

	name := sheetName(result.University)
	_, err := f.NewSheet(name)
	if err != nil {
		return err
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		err = f.SetSheetRow(sheet, cell, &row)
		if err != nil {
			return err
		}
	}
	return nil
}

func sheetName(university string) string {
	name := strings.NewReplacer("(", "", ")", "", " ", "_").Replace(university)
	if len(name) > maxSheetNameLength {
		name = name[:maxSheetNameLength]
	}
	return name
}
