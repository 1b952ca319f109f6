package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"progmap/lib/catalog"
	"progmap/lib/export"
	"progmap/lib/runstore"
	"progmap/lib/util/serviceutil"
	"progmap/services/collector"

	"github.com/spf13/cobra"
)

var (
	runMock   *bool
	runFormat *string
)

func init() {
	runMock = runCmd.Flags().Bool("mock", false, "Use the deterministic fixture scrapers instead of the network.")
	runFormat = runCmd.Flags().String("format", "", "Export a single format (csv, json, excel or all) instead of the configured set.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--mock] [--format csv|json|excel|all]",
	Short: "Scrapes every enabled university, exports the results and archives the run.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		var svc collector.Service
		if *runMock {
			svc = collector.Mock()
		} else {
			if !cfgFound {
				serviceutil.Fatal("failed to read config", fmt.Errorf("%s does not exist", *configPath))
			}
			var err error
			svc, err = collector.FromConfig(cfg)
			if err != nil {
				serviceutil.Fatal("failed to configure scrapers", err)
			}
		}
		slog.Info("starting run", "universities", svc.Universities(), "mock", *runMock)

		startedAt := time.Now()
		results := svc.Run(ctx)
		finishedAt := time.Now()

		writeExports(ctx, results, resolveFormats(*runFormat))

		store, err := runstore.Open(archivePath())
		if err != nil {
			serviceutil.Fatal("failed to open run archive", err)
		}
		defer store.Close()

		// archive even when the run was interrupted partway
		id, err := store.SaveRun(context.WithoutCancel(ctx), runstore.Run{
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
			Mock:       *runMock,
			Results:    results,
		})
		if err != nil {
			serviceutil.Fatal("failed to archive run", err)
		}
		slog.Info("archived run", "id", id)

		export.WriteTable(os.Stdout, results)
	},
}

// writeExports runs the export pipeline shared by `run` and
// `runs export`. Per-format failures are logged inside ExportAll and do
// not stop the other formats.
func writeExports(ctx context.Context, results []catalog.Result, formats []string) {
	exporter, err := export.NewExporter(cfg.Export.OutputDirectory)
	if err != nil {
		serviceutil.Fatal("failed to create output directory", err)
	}
	exporter.ExportAll(ctx, results, cfg.Export.BaseFilename, formats)

	if cfg.Export.SummaryEnabled() {
		_, err = exporter.WriteSummaryReport(ctx, results)
		if err != nil {
			slog.ErrorContext(ctx, "failed to write summary report", "err", err)
		}
	}
}
