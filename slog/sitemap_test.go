package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/mock"
	ptslog "github.com/fwojciec/pagetrim/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs seed count for the crawl root", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *pagetrim.URLFilter) ([]string, error) {
				return []string{"https://example.com/a", "https://example.com/b"}, nil
			},
		}
		filter, err := pagetrim.NewURLFilter([]string{"/docs/"}, nil)
		require.NoError(t, err)

		svc := ptslog.NewLoggingSitemapService(inner, logger)
		urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", filter)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, `msg="discover seeds"`)
		assert.Contains(t, output, "root=https://example.com")
		assert.Contains(t, output, "seeds=2")
		assert.Contains(t, output, "filtered=true")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failure as warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *pagetrim.URLFilter) ([]string, error) {
				return nil, errors.New("connection failed")
			},
		}

		svc := ptslog.NewLoggingSitemapService(inner, logger)
		_, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "seeds=0")
		assert.Contains(t, output, "filtered=false")
		assert.Contains(t, output, `err="connection failed"`)
	})
}
