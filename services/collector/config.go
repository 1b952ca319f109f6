package collector

import (
	"time"

	"progmap/lib/telemetry"
)

// Config is the top level structure of config.json5. The default-true
// knobs are pointers so a file that omits them can be told apart from
// one that turns them off.
type Config struct {
	Universities map[string]UniversityConfig `json:"universities"`
	Scraping     ScrapingConfig              `json:"scraping"`
	Logging      telemetry.LogConfig         `json:"logging"`
	Export       ExportConfig                `json:"export"`
	Archive      ArchiveConfig               `json:"archive"`
}

type UniversityConfig struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Enabled    bool   `json:"enabled"`
	ListingURL string `json:"listing_url"`
}

type ScrapingConfig struct {
	// seconds between requests
	DelayBetweenRequests float64 `json:"delay_between_requests"`
	// seconds per request
	RequestTimeout int `json:"request_timeout"`
	MaxRetries     int `json:"max_retries"`
	// base seconds between retry attempts
	RetryBackoff float64 `json:"retry_backoff"`
	UserAgent    string  `json:"user_agent"`
	Headless     *bool   `json:"headless"`
	FetchDetails *bool   `json:"fetch_details"`
	MaxDetails   int     `json:"max_details"`
	DebugHTTPDir string  `json:"debug_http_dir"`
}

func (c ScrapingConfig) Delay() time.Duration {
	if c.DelayBetweenRequests <= 0 {
		return 0
	}
	return time.Duration(c.DelayBetweenRequests * float64(time.Second))
}

func (c ScrapingConfig) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return time.Second * 30
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c ScrapingConfig) Backoff() time.Duration {
	if c.RetryBackoff <= 0 {
		return 0
	}
	return time.Duration(c.RetryBackoff * float64(time.Second))
}

func (c ScrapingConfig) HeadlessEnabled() bool {
	return c.Headless == nil || *c.Headless
}

func (c ScrapingConfig) DetailsEnabled() bool {
	return c.FetchDetails == nil || *c.FetchDetails
}

type ExportConfig struct {
	OutputDirectory string   `json:"output_directory"`
	Formats         []string `json:"formats"`
	GenerateSummary *bool    `json:"generate_summary"`
	BaseFilename    string   `json:"base_filename"`
}

func (c ExportConfig) SummaryEnabled() bool {
	return c.GenerateSummary == nil || *c.GenerateSummary
}

type ArchiveConfig struct {
	File string `json:"file"`
}
