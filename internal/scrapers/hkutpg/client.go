package hkutpg

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"progmap/lib/catalog"
	"progmap/lib/htmlutil"
	"progmap/lib/restyutil"
	"progmap/lib/scraper"
	"progmap/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/hkutpg")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type client struct {
	ListingUrl *url.URL
	Http       *resty.Client
}

func newClient(opts scraper.Options, limiter *rate.Limiter) (*client, error) {
	listingUrl, err := url.Parse(opts.ListingURL)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(listingUrl.Hostname()))

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}
	httpClient.SetTimeout(timeout)

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, "scrapers/hkutpg/http")
	if opts.DebugHTTPDir != "" {
		output, err := restyutil.NewFilesystemOutput(opts.DebugHTTPDir)
		if err != nil {
			return nil, err
		}
		restyutil.DumpExchanges(httpClient, output)
	}

	c := &client{
		ListingUrl: listingUrl,
		Http:       httpClient,
	}
	return c, nil
}

// ProgrammeHighlights fetches a programme detail page and classifies the
// full-time tab's highlight blocks into detail fields. A page without
// highlight blocks is not an error, it just yields empty fields.
func (c *client) ProgrammeHighlights(ctx context.Context, link string) (catalog.Highlights, error) {
	ctx, span := tracer.Start(ctx, "client:ProgrammeHighlights")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch detail page")
		return catalog.Highlights{}, err
	}
	if res.StatusCode() != 200 {
		err := fmt.Errorf("detail page returned status %d", res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return catalog.Highlights{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse detail page html")
		return catalog.Highlights{}, err
	}

	return parseHighlights(doc), nil
}

func parseHighlights(doc *goquery.Document) catalog.Highlights {
	var highlights catalog.Highlights
	doc.Find(selHighlightItem).Each(func(_ int, item *goquery.Selection) {
		title := htmlutil.Text(item, selHighlightTitle)
		if title == "" {
			return
		}
		field, ok := catalog.ClassifyHighlight(title)
		if !ok {
			return
		}
		highlights.Set(field, htmlutil.Text(item, selHighlightDesc))
	})
	return highlights
}
