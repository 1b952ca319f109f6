package scraper

// university scrapers are read-only: each run crawls a listing, optionally
// visits detail pages, and returns an immutable slice of records. the output
// depends solely on the site contents and the Options the scraper was
// constructed with, which makes every implementation swappable with a mock.

// a listing crawl generally has this structure:
// 1. open the paginated listing and wait for programme cards.
// 2. extract card fields through stable class selectors.
// 3. (optional) fetch each card's detail page with bounded retries
//    and fold detail highlights into the record.
// 4. advance pagination until the next control is missing or disabled.

// failure semantics differ by stage: a listing failure makes the whole crawl
// fail; a detail failure only leaves that record's detail fields empty.

import (
	"context"
	"time"

	"progmap/lib/catalog"
)

// Scraper is one university's crawl implementation.
type Scraper interface {
	// Key is the stable configuration key, e.g. "hku_tpg".
	Key() string
	// University is the human-readable institution name stored in results.
	University() string
	Scrape(ctx context.Context) ([]catalog.Programme, error)
}

// Options carries the knobs shared by all scraper implementations.
type Options struct {
	// Label is the short university tag written into each record.
	Label string
	// Name is the full institution name stored in results. Defaults to
	// whatever the implementation considers its home institution.
	Name string
	// ListingURL overrides the implementation's default listing page.
	ListingURL string

	UserAgent string
	// Timeout bounds a single HTTP request.
	Timeout time.Duration
	// Delay is the minimum interval between requests.
	Delay time.Duration

	// Retries is the number of additional attempts for a failed
	// detail-page fetch. Backoff is the base wait between attempts,
	// growing linearly (backoff * attempt number).
	Retries int
	Backoff time.Duration

	Headless     bool
	FetchDetails bool
	// MaxDetails caps detail-page fetches per crawl, 0 meaning no cap.
	MaxDetails int

	// DebugHTTPDir dumps raw HTTP exchanges into this directory when set.
	DebugHTTPDir string
}
