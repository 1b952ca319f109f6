package hkutpg

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"progmap/lib/catalog"
	"progmap/lib/htmlutil"
	"progmap/lib/scraper"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	DefaultListingURL = "https://portal.hku.hk/tpg-admissions/programme-listing"
	defaultLabel      = "HKU"
	defaultName       = "University of Hong Kong (HKU)"
)

// detail pages barely change within a run window, and overlapping crawls
// of the same listing under different labels are common, so responses are
// cached for a while.
const (
	detailCacheSize = 512
	detailCacheTTL  = time.Hour
)

type Scraper struct {
	opts        scraper.Options
	limiter     *rate.Limiter
	client      *client
	detailCache *expirable.LRU[string, catalog.Highlights]
}

var _ scraper.Scraper = (*Scraper)(nil)

func New(opts scraper.Options) (*Scraper, error) {
	if opts.Label == "" {
		opts.Label = defaultLabel
	}
	if opts.Name == "" {
		opts.Name = defaultName
	}
	if opts.ListingURL == "" {
		opts.ListingURL = DefaultListingURL
	}

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	client, err := newClient(opts, limiter)
	if err != nil {
		return nil, err
	}

	return &Scraper{
		opts:        opts,
		limiter:     limiter,
		client:      client,
		detailCache: expirable.NewLRU[string, catalog.Highlights](detailCacheSize, nil, detailCacheTTL),
	}, nil
}

func (s *Scraper) Key() string {
	return "hku_tpg"
}

func (s *Scraper) University() string {
	return s.opts.Name
}

func (s *Scraper) Scrape(ctx context.Context) ([]catalog.Programme, error) {
	ctx, span := tracer.Start(ctx, "scraper:Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("listing_url", s.opts.ListingURL))

	browser, err := newBrowser(ctx, s.opts.Headless)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to launch browser")
		return nil, err
	}
	defer browser.Close()

	err = s.limiter.Wait(ctx)
	if err != nil {
		return nil, err
	}
	err = browser.OpenListing(ctx, s.opts.ListingURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open listing")
		return nil, err
	}

	state := newCrawlState()
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		html, err := browser.HTML()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to snapshot listing html")
			return nil, err
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse listing html")
			return nil, err
		}

		added := s.collectPage(ctx, doc, state)
		slog.InfoContext(
			ctx, "collected listing page",
			"label", s.opts.Label,
			"page", page,
			"added", added,
			"total", len(state.programmes),
		)

		more, err := browser.NextPage(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "pagination failed")
			return nil, err
		}
		if !more {
			break
		}
		err = s.limiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("programmes", len(state.programmes)))
	return state.programmes, nil
}

type crawlState struct {
	programmes []catalog.Programme
	seen       map[string]bool
	details    int
}

func newCrawlState() *crawlState {
	return &crawlState{seen: map[string]bool{}}
}

// collectPage folds one listing page into the crawl state and reports how
// many records it added. Cards without a usable link, cards already seen
// on an earlier page and cards with no identifying fields at all are
// dropped.
func (s *Scraper) collectPage(ctx context.Context, doc *goquery.Document, state *crawlState) int {
	added := 0
	for _, programme := range s.parseListing(doc) {
		if programme.Link == "" || state.seen[programme.Link] {
			continue
		}
		if programme.StructurallyEmpty() {
			continue
		}
		if s.opts.FetchDetails && (s.opts.MaxDetails <= 0 || state.details < s.opts.MaxDetails) {
			highlights := s.fetchHighlights(ctx, programme.Link)
			highlights.FillProgramme(&programme)
			state.details++
		}
		state.seen[programme.Link] = true
		state.programmes = append(state.programmes, programme)
		added++
	}
	return added
}

// parseListing extracts programme cards from a rendered listing snapshot.
// Cards missing every identifying field are kept here and filtered by the
// crawl loop, so the function stays a plain projection of the html.
func (s *Scraper) parseListing(doc *goquery.Document) []catalog.Programme {
	var programmes []catalog.Programme
	doc.Find(selProgrammeCard).Each(func(_ int, card *goquery.Selection) {
		programmes = append(programmes, catalog.Programme{
			Abbr:       htmlutil.Text(card, selCardAbbr),
			University: s.opts.Label,
			Faculty:    htmlutil.Text(card, selCardFaculty),
			Title:      htmlutil.Text(card, selCardTitle),
			Mode:       htmlutil.Text(card, selCardMode),
			Link:       htmlutil.ResolveURL(s.client.ListingUrl, htmlutil.Attr(card, "href")),
		})
	})
	return programmes
}

// fetchHighlights pulls a detail page with bounded retries. Detail
// failures are soft: after the last attempt the record simply keeps
// empty detail fields.
func (s *Scraper) fetchHighlights(ctx context.Context, link string) catalog.Highlights {
	ctx, span := tracer.Start(ctx, "scraper:fetchHighlights")
	defer span.End()
	span.SetAttributes(attribute.String("link", link))

	if cached, hit := s.detailCache.Get(link); hit {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached
	}

	attempts := s.opts.Retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		highlights, err := s.client.ProgrammeHighlights(ctx, link)
		if err == nil {
			s.detailCache.Add(link, highlights)
			return highlights
		}

		span.RecordError(err)
		slog.WarnContext(
			ctx, "detail page fetch failed",
			"link", link,
			"attempt", attempt,
			"attempts", attempts,
			"err", err,
		)
		if attempt == attempts {
			break
		}

		select {
		case <-time.After(s.opts.Backoff * time.Duration(attempt)):
		case <-ctx.Done():
			return catalog.Highlights{}
		}
	}

	span.SetStatus(codes.Error, "detail page attempts exhausted")
	slog.ErrorContext(ctx, "giving up on detail page", "link", link, "attempts", attempts)
	return catalog.Highlights{}
}
