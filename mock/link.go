package mock

import (
	"context"

	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of pagetrim.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]pagetrim.Link, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]pagetrim.Link, error) {
	return e.ExtractLinksFn(html, baseURL)
}

var _ pagetrim.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pagetrim.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, root string, filter *pagetrim.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, root string, filter *pagetrim.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, root, filter)
}
