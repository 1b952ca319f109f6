package commands

import (
	"os"
	"time"

	"progmap/lib/export"
	"progmap/lib/runstore"
	"progmap/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	runsLimit        *int
	runsExportFormat *string
)

func init() {
	runsLimit = runsCmd.Flags().Int("limit", 20, "Number of runs to list, 0 meaning all of them.")
	runsExportFormat = runsExportCmd.Flags().String("format", "", "Export a single format (csv, json, excel or all) instead of the configured set.")
	runsCmd.AddCommand(runsExportCmd)
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [--limit <n>]",
	Short: "Lists archived scraping runs.",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := runstore.Open(archivePath())
		if err != nil {
			serviceutil.Fatal("failed to open run archive", err)
		}
		defer store.Close()

		summaries, err := store.ListRuns(cmd.Context(), *runsLimit)
		if err != nil {
			serviceutil.Fatal("failed to list runs", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Started", "Took", "Mock", "Universities", "OK", "Programmes"})
		for _, summary := range summaries {
			t.AppendRow(table.Row{
				summary.ID,
				summary.StartedAt.Format(time.DateTime),
				summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second).String(),
				summary.Mock,
				summary.Universities,
				summary.Successes,
				summary.Programmes,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var runsExportCmd = &cobra.Command{
	Use:   "export <run id>",
	Short: "Re-runs the export pipeline from an archived run.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, err := runstore.Open(archivePath())
		if err != nil {
			serviceutil.Fatal("failed to open run archive", err)
		}
		defer store.Close()

		run, err := store.GetRun(ctx, args[0])
		if err != nil {
			serviceutil.Fatal("failed to load run", err)
		}

		writeExports(ctx, run.Results, resolveFormats(*runsExportFormat))
		export.WriteTable(os.Stdout, run.Results)
	},
}
