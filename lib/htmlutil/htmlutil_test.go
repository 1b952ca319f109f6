package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const cardHtml = `
<a href="/tpg-admissions/programme/msc-comp" class="card">
	<div class="programme-faculty">Faculty of
		Engineering</div>
	<div class="programme-title">Master of Science in Computer Science</div>
	<span class="abbreviation">MSc(CompSc)</span>
</a>`

func TestGetText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="programme-title">Master of <em>Science</em> in
			<span>Computer Science</span></div>`,
	))
	if err != nil {
		t.Fatal(err)
	}
	title := doc.Find(".programme-title")
	require.NotEmpty(t, title.Nodes)

	// text nodes concatenate across nested elements, whitespace intact
	raw := GetText(title.Nodes[0])
	require.Contains(t, raw, "Master of Science in")
	require.Contains(t, raw, "\n")
	require.Equal(t, "Master of Science in Computer Science", Clean(raw))
}

func TestText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cardHtml))
	if err != nil {
		t.Fatal(err)
	}
	card := doc.Find("a.card")

	require.Equal(t, "Faculty of Engineering", Text(card, ".programme-faculty"))
	require.Equal(t, "MSc(CompSc)", Text(card, ".abbreviation"))
	require.Equal(t, "", Text(card, ".mode-of-study"))
}

func TestAttr(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cardHtml))
	if err != nil {
		t.Fatal(err)
	}
	card := doc.Find("a.card")

	require.Equal(t, "/tpg-admissions/programme/msc-comp", Attr(card, "href"))
	require.Equal(t, "", Attr(card, "data-missing"))
	require.Equal(t, "", Attr(doc.Find(".nothing"), "href"))
}

func TestResolveURL(t *testing.T) {
	base, err := url.Parse("https://portal.hku.hk/tpg-admissions/programme-listing")
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(
		t,
		"https://portal.hku.hk/tpg-admissions/programme/msc-comp",
		ResolveURL(base, "/tpg-admissions/programme/msc-comp"),
	)
	require.Equal(
		t,
		"https://example.com/detail",
		ResolveURL(base, "https://example.com/detail"),
	)
	require.Equal(t, "", ResolveURL(base, ""))
	require.Equal(t, "", ResolveURL(base, "javascript:void(0)"))
	require.Equal(t, "", ResolveURL(nil, "/relative/only"))
}
