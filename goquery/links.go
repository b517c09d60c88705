// Package goquery extracts outbound links from HTML using goquery CSS
// selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects followable links from anchors.
type LinkExtractor struct {
	selector string
	sameHost bool
}

// Option configures a LinkExtractor.
type Option func(*LinkExtractor)

// WithSelector restricts extraction to elements matching a CSS selector.
// Only matches carrying an href attribute are used. Defaults to "a[href]".
func WithSelector(selector string) Option {
	return func(e *LinkExtractor) {
		e.selector = selector
	}
}

// WithSameHost drops links to hosts other than the page's own.
func WithSameHost() Option {
	return func(e *LinkExtractor) {
		e.sameHost = true
	}
}

// NewLinkExtractor creates a LinkExtractor.
func NewLinkExtractor(opts ...Option) *LinkExtractor {
	e := &LinkExtractor{selector: "a[href]"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractLinks returns the http and https links of html resolved against
// baseURL, or against the document's <base href> when present. Fragments
// are stripped, links back to the page itself are dropped and each URL
// appears once, at its first position.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]pagetrim.Link, error) {
	page, err := url.Parse(baseURL)
	if err != nil {
		return nil, pagetrim.Errorf(pagetrim.EINVALID, "invalid base URL: %v", err)
	}
	page.Fragment = ""

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagetrim.Errorf(pagetrim.EPARSE, "failed to parse HTML: %v", err)
	}

	base := page
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = page.ResolveReference(ref)
		}
	}

	self := page.String()
	seen := make(map[string]bool)
	var links []pagetrim.Link
	doc.Find(e.selector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		resolved, ok := resolve(base, href)
		if !ok || resolved.String() == self || seen[resolved.String()] {
			return
		}
		if e.sameHost && !strings.EqualFold(resolved.Host, page.Host) {
			return
		}
		seen[resolved.String()] = true
		links = append(links, pagetrim.Link{
			URL:  resolved.String(),
			Text: strings.Join(strings.Fields(sel.Text()), " "),
		})
	})
	return links, nil
}

// resolve turns href into an absolute http(s) URL without fragment.
func resolve(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}
	resolved.Fragment = ""
	return resolved, true
}
