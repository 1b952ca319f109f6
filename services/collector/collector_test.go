package collector

import (
	"context"
	"fmt"
	"testing"

	"progmap/lib/catalog"
	"progmap/lib/scraper"
	"progmap/lib/telemetry"

	"github.com/stretchr/testify/require"
)

type stubScraper struct {
	key        string
	university string
	programmes []catalog.Programme
	err        error
}

func (s stubScraper) Key() string {
	return s.key
}

func (s stubScraper) University() string {
	return s.university
}

func (s stubScraper) Scrape(ctx context.Context) ([]catalog.Programme, error) {
	return s.programmes, s.err
}

func TestRunContinuesPastFailures(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/collector")
	defer cleanup()

	broken := stubScraper{
		key:        "broken",
		university: "Broken University",
		err:        fmt.Errorf("listing timed out"),
	}
	working := stubScraper{
		key:        "working",
		university: "Working University",
		programmes: []catalog.Programme{
			{Abbr: "MSc(A)", University: "WU", Title: "Master of Science in A"},
			{Abbr: "MSc(B)", University: "WU", Title: "Master of Science in B"},
		},
	}

	results := NewService([]scraper.Scraper{broken, working}).Run(context.Background())
	require.Len(t, results, 2)

	require.False(t, results[0].Success)
	require.Equal(t, "Broken University", results[0].University)
	require.Equal(t, "listing timed out", results[0].Error)
	require.NotNil(t, results[0].Programmes)
	require.Empty(t, results[0].Programmes)
	require.False(t, results[0].ScrapedAt.IsZero())

	require.True(t, results[1].Success)
	require.Len(t, results[1].Programmes, 2)

	require.Equal(t, 2, catalog.TotalProgrammes(results))
	require.Equal(t, 1, catalog.SuccessCount(results))
}

func TestRunStopsOnCancel(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/collector")
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewService([]scraper.Scraper{
		stubScraper{key: "a", university: "A"},
		stubScraper{key: "b", university: "B"},
	})
	results := service.Run(ctx)
	require.Empty(t, results)
}

func TestMockService(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/collector")
	defer cleanup()

	service := Mock()
	require.Equal(t, 2, service.Universities())

	results := service.Run(context.Background())
	require.Len(t, results, 2)
	require.Equal(t, "University of Hong Kong (HKU)", results[0].University)
	require.Len(t, results[0].Programmes, 5)
	require.Equal(t, "Chinese University of Hong Kong (CUHK)", results[1].University)
	require.Len(t, results[1].Programmes, 3)
	require.Equal(t, 8, catalog.TotalProgrammes(results))
}

func TestFromConfig(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/collector")
	defer cleanup()

	cfg := Config{
		Universities: map[string]UniversityConfig{
			"hku_tpg": {
				Name:    "University of Hong Kong (HKU)",
				Label:   "HKU",
				Enabled: true,
			},
			// enabled but nothing registered for it
			"hkust": {
				Name:    "Hong Kong University of Science and Technology",
				Label:   "HKUST",
				Enabled: true,
			},
			"cuhk": {
				Name:    "Chinese University of Hong Kong (CUHK)",
				Label:   "CUHK",
				Enabled: false,
			},
		},
	}

	service, err := FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 1, service.Universities())
}

func TestFromConfigNothingEnabled(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/collector")
	defer cleanup()

	_, err := FromConfig(Config{
		Universities: map[string]UniversityConfig{
			"hku_tpg": {Name: "University of Hong Kong (HKU)", Enabled: false},
		},
	})
	require.Error(t, err)
}

func TestScrapingConfigDefaults(t *testing.T) {
	var cfg ScrapingConfig
	require.Equal(t, int64(0), int64(cfg.Delay()))
	require.Equal(t, int64(30e9), int64(cfg.Timeout()))
	require.True(t, cfg.HeadlessEnabled())
	require.True(t, cfg.DetailsEnabled())

	off := false
	cfg = ScrapingConfig{
		DelayBetweenRequests: 1.5,
		RequestTimeout:       10,
		RetryBackoff:         0.5,
		Headless:             &off,
		FetchDetails:         &off,
	}
	require.Equal(t, int64(1500e6), int64(cfg.Delay()))
	require.Equal(t, int64(10e9), int64(cfg.Timeout()))
	require.Equal(t, int64(500e6), int64(cfg.Backoff()))
	require.False(t, cfg.HeadlessEnabled())
	require.False(t, cfg.DetailsEnabled())
}
