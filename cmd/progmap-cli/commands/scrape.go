package commands

import (
	"log/slog"
	"path/filepath"
	"time"

	"progmap/internal/scrapers/hkutpg"
	"progmap/lib/catalog"
	"progmap/lib/export"
	"progmap/lib/scraper"
	"progmap/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	scrapeURL        *string
	scrapeLabel      *string
	scrapeOut        *string
	scrapeHeadless   *bool
	scrapeDetails    *bool
	scrapeMaxDetails *int
	scrapeDelay      *float64
	scrapeRetries    *int
	scrapeBackoff    *float64
)

func init() {
	scrapeURL = scrapeCmd.Flags().String("url", hkutpg.DefaultListingURL, "The programme listing page to crawl.")
	scrapeLabel = scrapeCmd.Flags().String("label", "HKU", "The university tag written into each record.")
	scrapeOut = scrapeCmd.Flags().String("out", "programmes.csv", "The CSV file to write records to.")
	scrapeHeadless = scrapeCmd.Flags().Bool("headless", true, "Run the listing browser headless.")
	scrapeDetails = scrapeCmd.Flags().Bool("details", true, "Fetch each programme's detail page.")
	scrapeMaxDetails = scrapeCmd.Flags().Int("max-details", 0, "Cap on detail page fetches, 0 meaning no cap.")
	scrapeDelay = scrapeCmd.Flags().Float64("delay", 0, "Minimum seconds between requests.")
	scrapeRetries = scrapeCmd.Flags().Int("retries", 2, "Additional attempts for a failed detail page fetch.")
	scrapeBackoff = scrapeCmd.Flags().Float64("backoff", 1.5, "Base seconds between detail retry attempts, growing linearly.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--url <listing>] [--out <path/to/programmes.csv>]",
	Short: "Crawls a single programme listing straight to a CSV file.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		opts := scraper.Options{
			Label:        *scrapeLabel,
			ListingURL:   *scrapeURL,
			UserAgent:    cfg.Scraping.UserAgent,
			Timeout:      cfg.Scraping.Timeout(),
			Delay:        secondsDuration(*scrapeDelay),
			Retries:      *scrapeRetries,
			Backoff:      secondsDuration(*scrapeBackoff),
			Headless:     *scrapeHeadless,
			FetchDetails: *scrapeDetails,
			MaxDetails:   *scrapeMaxDetails,
			DebugHTTPDir: cfg.Scraping.DebugHTTPDir,
		}
		// the config file still drives retry pacing when its flags were
		// left untouched
		if cfgFound {
			if !cmd.Flags().Changed("delay") {
				opts.Delay = cfg.Scraping.Delay()
			}
			if !cmd.Flags().Changed("retries") {
				opts.Retries = cfg.Scraping.MaxRetries
			}
			if !cmd.Flags().Changed("backoff") {
				opts.Backoff = cfg.Scraping.Backoff()
			}
		}

		scr, err := hkutpg.New(opts)
		if err != nil {
			serviceutil.Fatal("failed to configure scraper", err)
		}

		t1 := time.Now()
		programmes, err := scr.Scrape(ctx)
		if err != nil {
			serviceutil.Fatal("scraping failed", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds(), "programmes", len(programmes))

		result := catalog.Result{
			University: scr.University(),
			Success:    true,
			Programmes: programmes,
			ScrapedAt:  time.Now(),
		}

		exporter, err := export.NewExporter(filepath.Dir(*scrapeOut))
		if err != nil {
			serviceutil.Fatal("failed to create output directory", err)
		}
		path, err := exporter.WriteCSV(ctx, []catalog.Result{result}, filepath.Base(*scrapeOut))
		if err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}
		slog.Info("wrote programmes", "path", path)
	},
}

func secondsDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
