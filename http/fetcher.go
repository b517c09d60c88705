// Package http fetches pages and sitemaps over plain HTTP, without running
// JavaScript.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pagetrim"
	"golang.org/x/net/html/charset"
)

// Fetch defaults.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultUserAgent    = "pagetrim/1.0 (+https://github.com/fwojciec/pagetrim)"
	DefaultMaxBytes     = 10 << 20
)

// Ensure Fetcher implements pagetrim.Fetcher at compile time.
var _ pagetrim.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages with GET requests. Bodies are decoded to
// UTF-8 using the declared or sniffed charset.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for a whole request including the body.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBytes caps the size of a page body. Larger pages fail with EINVALID.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithClient replaces the underlying HTTP client. The timeout option is
// ignored when a client is given.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

// Fetch retrieves the page at url. A 404 or 410 status fails with ENOTFOUND,
// a non-HTML content type with EINVALID and any other non-200 status with
// EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagetrim.Errorf(pagetrim.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", pagetrim.Errorf(pagetrim.EINVALID, "%s is not HTML (%s)", url, contentType)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBytes+1), contentType)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	// The decoded size may differ from the raw size; the cap is approximate.
	if int64(len(data)) > f.maxBytes {
		return "", pagetrim.Errorf(pagetrim.EINVALID, "%s exceeds %d bytes", url, f.maxBytes)
	}
	return string(data), nil
}

// Close releases resources. The HTTP client needs no explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func checkStatus(resp *http.Response, url string) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound, http.StatusGone:
		return pagetrim.Errorf(pagetrim.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return pagetrim.Errorf(pagetrim.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}
}

// isHTML accepts missing content types, since many servers omit them.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

