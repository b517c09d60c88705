package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs crawl seeding from sitemaps.
type LoggingSitemapService struct {
	next   pagetrim.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next pagetrim.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs logs the number of seeds found for the crawl root. A
// discovery failure is logged at Warn since the crawl goes on without
// sitemap seeds.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagetrim.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "discover seeds",
			"root", baseURL,
			"seeds", len(urls),
			"filtered", filter != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
