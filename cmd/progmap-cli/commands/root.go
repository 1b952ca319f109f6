package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"progmap/lib/configutil"
	"progmap/lib/export"
	"progmap/lib/telemetry"
	"progmap/lib/util/serviceutil"
	"progmap/services/collector"

	"github.com/spf13/cobra"
)

var configPath *string

// cfg is shared by every subcommand. cfgFound distinguishes a missing
// config file (fine for scrape and mock runs, which have defaults) from
// a present one.
var cfg collector.Config
var cfgFound bool

var rootCmd = &cobra.Command{
	Use:   "progmap-cli",
	Short: "progmap-cli crawls Hong Kong postgraduate admission portals into tabular datasets.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, cfgFound = readConfig()
		telemetry.InitSlog(cfg.Logging)
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The configuration file to read.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readConfig tolerates a missing config file by falling back to the zero
// config; an existing but invalid file is fatal.
func readConfig() (collector.Config, bool) {
	config, err := configutil.ReadConfig[collector.Config](*configPath)
	if errors.Is(err, os.ErrNotExist) {
		return collector.Config{}, false
	}
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return config, true
}

// resolveFormats turns the --format flag and the configured format list
// into the set passed to the exporter. The flag, when given, wins.
func resolveFormats(flag string) []string {
	if flag != "" {
		if !export.KnownFormat(flag) {
			serviceutil.Fatal("unknown export format", fmt.Errorf("%q is not one of csv, json, excel, all", flag))
		}
		return []string{flag}
	}
	if len(cfg.Export.Formats) == 0 {
		return []string{export.FormatAll}
	}
	return cfg.Export.Formats
}

func archivePath() string {
	if cfg.Archive.File == "" {
		return "progmap.db"
	}
	return cfg.Archive.File
}
