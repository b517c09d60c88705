package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagetrim"
)

// maxIndexDepth bounds how deeply sitemap indexes may nest.
const maxIndexDepth = 3

// Ensure SitemapService implements pagetrim.SitemapService.
var _ pagetrim.SitemapService = (*SitemapService)(nil)

// SitemapService discovers crawl seeds from robots.txt and sitemap files.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs returns the page URLs listed in the site's sitemaps, in the
// order listed and without duplicates. Only URLs on the host of baseURL are
// returned; when baseURL has a path, only URLs below that path.
// A site without sitemaps yields an empty slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagetrim.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, pagetrim.Errorf(pagetrim.EINVALID, "invalid base URL %q", baseURL)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.findSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{svc: s, visited: make(map[string]bool)}
	for _, sitemap := range sitemaps {
		if err := w.process(ctx, sitemap, 0); err != nil {
			return nil, err
		}
	}

	urls := []string{}
	seen := make(map[string]bool)
	for _, u := range w.urls {
		if seen[u] || !sameHost(u, base) || !matchesPathPrefix(u, pathPrefix) || !filter.Match(u) {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls, nil
}

// findSitemaps reads Sitemap: directives from robots.txt and falls back to
// /sitemap.xml when there are none.
func (s *SitemapService) findSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	sitemaps, err := s.readRobots(ctx, robots)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(sitemaps) > 0 {
		return sitemaps, nil
	}
	return []string{root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}, nil
}

func (s *SitemapService) readRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			sitemaps = append(sitemaps, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// sitemapWalk collects page URLs across a tree of sitemaps.
type sitemapWalk struct {
	svc     *SitemapService
	visited map[string]bool
	urls    []string
}

// process reads one sitemap. Missing or malformed sitemaps are skipped;
// only cancellation is an error.
func (w *sitemapWalk) process(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] || depth > maxIndexDepth {
		return nil
	}
	w.visited[sitemapURL] = true

	doc, err := w.svc.readXML(ctx, sitemapURL)
	if err != nil {
		return ctx.Err()
	}
	root := doc.Root()
	if root == nil {
		return nil
	}

	switch root.Tag {
	case "sitemapindex":
		for _, child := range locs(root, "sitemap") {
			if err := w.process(ctx, child, depth+1); err != nil {
				return err
			}
		}
	case "urlset":
		w.urls = append(w.urls, locs(root, "url")...)
	}
	return nil
}

// locs returns the <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) readXML(ctx context.Context, sitemapURL string) (*etree.Document, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(sitemapURL, ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", sitemapURL, err)
		}
		defer gz.Close()
		r = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	return doc, nil
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, pagetrim.Errorf(pagetrim.EINVALID, "invalid URL %q: %v", target, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, target); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func sameHost(rawURL string, base *url.URL) bool {
	u, err := url.Parse(rawURL)
	return err == nil && strings.EqualFold(u.Host, base.Host)
}

// matchesPathPrefix checks if a URL's path starts with prefix at a path
// boundary: /docs matches /docs/ and /docs/intro but not /documentation.
func matchesPathPrefix(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		if parsed.Path == prefix {
			return true
		}
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix)
}
