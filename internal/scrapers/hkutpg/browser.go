package hkutpg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.opentelemetry.io/otel/codes"
)

// The listing is rendered client side, so a real browser drives it. The
// pagination control belongs to paginationjs: clicking "next" swaps the
// card container in place and moves the active page marker.
const (
	listingWait  = time.Second * 15
	pagePollRate = time.Millisecond * 200
)

type browser struct {
	rod      *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
}

func newBrowser(ctx context.Context, headless bool) (*browser, error) {
	l := launcher.New().Headless(headless)
	controlUrl, err := l.Launch()
	if err != nil {
		return nil, err
	}
	b := rod.New().ControlURL(controlUrl).Context(ctx)
	err = b.Connect()
	if err != nil {
		l.Cleanup()
		return nil, err
	}
	return &browser{rod: b, launcher: l}, nil
}

func (b *browser) Close() {
	if b.page != nil {
		b.page.Close()
	}
	b.rod.Close()
	b.launcher.Cleanup()
}

// OpenListing navigates to the listing page and waits for the first
// programme card to render.
func (b *browser) OpenListing(ctx context.Context, listingUrl string) error {
	ctx, span := tracer.Start(ctx, "browser:OpenListing")
	defer span.End()

	page, err := b.rod.Page(proto.TargetCreateTarget{URL: listingUrl})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open listing page")
		return err
	}
	b.page = page

	_, err = page.Timeout(listingWait).Element(selProgrammeCard)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no programme cards rendered")
		return fmt.Errorf("wait for programme cards: %w", err)
	}
	return nil
}

func (b *browser) HTML() (string, error) {
	return b.page.HTML()
}

// ActivePageLabel returns the text of the pagination control's active
// page, or "" when the control is absent.
func (b *browser) ActivePageLabel() string {
	has, el, err := b.page.Has(selActivePage)
	if err != nil || !has {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// paginationDone reports whether a rendered listing snapshot marks the
// crawl as finished: the next control is missing, disabled or has no
// clickable anchor.
func paginationDone(doc *goquery.Document) bool {
	next := doc.Find(selNextPage).First()
	if next.Length() == 0 {
		return true
	}
	class, _ := next.Attr("class")
	if strings.Contains(strings.ToLower(class), "disabled") {
		return true
	}
	return next.Find("a").Length() == 0
}

// NextPage advances the pagination by one page. It reports false without
// error when paginationDone says the crawl is over.
func (b *browser) NextPage(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "browser:NextPage")
	defer span.End()

	html, err := b.page.HTML()
	if err != nil {
		return false, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, err
	}
	if paginationDone(doc) {
		return false, nil
	}

	has, anchor, err := b.page.Has(selNextPage + " a")
	if err != nil {
		return false, err
	}
	if !has {
		return false, nil
	}

	previous := b.ActivePageLabel()
	err = anchor.Click(proto.InputMouseButtonLeft, 1)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to click next page")
		return false, err
	}

	err = b.waitForPageChange(ctx, previous)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "page did not advance")
		return false, err
	}
	_, err = b.page.Timeout(listingWait).Element(selProgrammeCard)
	if err != nil {
		return false, fmt.Errorf("wait for programme cards after paging: %w", err)
	}
	return true, nil
}

// waitForPageChange polls the active page marker until it moves off the
// previous label. Some portal skins drop the marker entirely, in which
// case a short settle delay is the best available signal.
func (b *browser) waitForPageChange(ctx context.Context, previous string) error {
	if previous == "" {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	deadline := time.Now().Add(listingWait)
	for time.Now().Before(deadline) {
		label := b.ActivePageLabel()
		if label != "" && label != previous {
			return nil
		}
		select {
		case <-time.After(pagePollRate):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("pagination stuck on page %q", previous)
}
