package htmlutil

import (
	"bytes"
	"net/url"
	"strings"
	"unicode"

	"progmap/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// Clean folds whitespace runs into single spaces and strips whatever
// non-printable runes remain.
func Clean(s string) string {
	return removeNonPrintable(textutil.CleanText(s))
}

// Text returns the cleaned text of the first element matching selector
// under sel. Absent elements yield "".
func Text(sel *goquery.Selection, selector string) string {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return ""
	}
	return Clean(GetText(found.Nodes[0]))
}

// Attr returns the trimmed value of the named attribute on the first node
// of sel. Absent nodes or attributes yield "".
func Attr(sel *goquery.Selection, name string) string {
	value, ok := sel.First().Attr(name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// ResolveURL resolves href against base and returns the absolute URL, or
// "" when href does not parse into a fetchable http(s) URL.
func ResolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		link = base.ResolveReference(link)
	}
	if (link.Scheme != "http" && link.Scheme != "https") || link.Host == "" {
		return ""
	}
	return link.String()
}
