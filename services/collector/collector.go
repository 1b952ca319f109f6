// Package collector orchestrates one scraping run across every enabled
// university and turns each crawl into a Result, successful or not.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"progmap/internal/scrapers/hkutpg"
	"progmap/internal/scrapers/mock"
	"progmap/lib/catalog"
	"progmap/lib/scraper"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/collector")

type factory func(opts scraper.Options) (scraper.Scraper, error)

// registry maps a config key under "universities" to the scraper that
// knows how to crawl that portal.
var registry = map[string]factory{
	"hku_tpg": func(opts scraper.Options) (scraper.Scraper, error) {
		return hkutpg.New(opts)
	},
}

type Service struct {
	scrapers []scraper.Scraper
}

func NewService(scrapers []scraper.Scraper) Service {
	return Service{scrapers: scrapers}
}

// Mock returns a service backed by the fixture scrapers only.
func Mock() Service {
	return NewService(mock.All())
}

// FromConfig instantiates a scraper for every enabled university, in
// sorted key order so runs are reproducible. Enabled keys with no
// registered scraper are skipped with a warning; ending up with no
// scrapers at all is an error.
func FromConfig(cfg Config) (Service, error) {
	keys := make([]string, 0, len(cfg.Universities))
	for key := range cfg.Universities {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var scrapers []scraper.Scraper
	for _, key := range keys {
		university := cfg.Universities[key]
		if !university.Enabled {
			continue
		}
		create, ok := registry[key]
		if !ok {
			slog.Warn("no scraper registered for university", "key", key)
			continue
		}
		s, err := create(scraperOptions(university, cfg.Scraping))
		if err != nil {
			return Service{}, fmt.Errorf("configure scraper %q: %w", key, err)
		}
		scrapers = append(scrapers, s)
	}
	if len(scrapers) == 0 {
		return Service{}, fmt.Errorf("no scrapers configured or enabled")
	}
	return NewService(scrapers), nil
}

func scraperOptions(university UniversityConfig, scraping ScrapingConfig) scraper.Options {
	return scraper.Options{
		Label:        university.Label,
		Name:         university.Name,
		ListingURL:   university.ListingURL,
		UserAgent:    scraping.UserAgent,
		Timeout:      scraping.Timeout(),
		Delay:        scraping.Delay(),
		Retries:      scraping.MaxRetries,
		Backoff:      scraping.Backoff(),
		Headless:     scraping.HeadlessEnabled(),
		FetchDetails: scraping.DetailsEnabled(),
		MaxDetails:   scraping.MaxDetails,
		DebugHTTPDir: scraping.DebugHTTPDir,
	}
}

// Universities returns how many universities the service will attempt.
func (s Service) Universities() int {
	return len(s.scrapers)
}

// Run crawls every university in order. A failed crawl becomes a failed
// Result and the run moves on; only context cancellation stops the loop
// early.
func (s Service) Run(ctx context.Context) []catalog.Result {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	results := make([]catalog.Result, 0, len(s.scrapers))
	for _, scr := range s.scrapers {
		if ctx.Err() != nil {
			slog.WarnContext(ctx, "run cancelled", "completed", len(results), "configured", len(s.scrapers))
			break
		}
		results = append(results, s.scrapeUniversity(ctx, scr))
	}

	span.SetAttributes(
		attribute.Int("universities", len(results)),
		attribute.Int("programmes", catalog.TotalProgrammes(results)),
	)
	return results
}

func (s Service) scrapeUniversity(ctx context.Context, scr scraper.Scraper) catalog.Result {
	ctx, span := tracer.Start(ctx, "ScrapeUniversity")
	defer span.End()
	span.SetAttributes(attribute.String("university", scr.University()))

	slog.InfoContext(ctx, "starting scraping", "university", scr.University())

	programmes, err := scr.Scrape(ctx)
	result := catalog.Result{
		University: scr.University(),
		ScrapedAt:  time.Now(),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")
		slog.ErrorContext(ctx, "scraping failed", "university", scr.University(), "err", err)
		result.Programmes = []catalog.Programme{}
		result.Error = err.Error()
		return result
	}
	if programmes == nil {
		programmes = []catalog.Programme{}
	}

	result.Success = true
	result.Programmes = programmes
	slog.InfoContext(ctx, "scraping succeeded", "university", scr.University(), "programmes", len(programmes))
	return result
}
