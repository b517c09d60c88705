package crawl_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays is used for fast unit tests.
var noDelays = []time.Duration{0, 0, 0}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "<html>content</html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries on failure and succeeds", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			if attempts < 4 {
				return "", errors.New("transient error")
			}
			return "<html>success</html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>success</html>", html)
		assert.Equal(t, 4, attempts)
	})

	t.Run("returns last error after max retries", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", errors.New("persistent error")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persistent error")
		assert.Equal(t, 4, attempts)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{pagetrim.ENOTFOUND, pagetrim.EINVALID} {
			var attempts int
			fetch := func(ctx context.Context, url string) (string, error) {
				attempts++
				return "", pagetrim.Errorf(code, "permanent")
			}

			_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

			assert.Equal(t, code, pagetrim.ErrorCode(err))
			assert.Equal(t, 1, attempts, code)
		}
	})

	t.Run("retries upstream failures", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", pagetrim.Errorf(pagetrim.EFETCH, "status 503")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		assert.Equal(t, pagetrim.EFETCH, pagetrim.ErrorCode(err))
		assert.Equal(t, 4, attempts)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			cancel()
			return "", errors.New("transient error")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("logs each retry at debug level", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			if attempts < 4 {
				return "", errors.New("transient error")
			}
			return "<html>success</html>", nil
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/page", fetch, logger, noDelays)

		require.NoError(t, err)
		assert.Equal(t, 3, strings.Count(buf.String(), "retrying fetch"))
		assert.Contains(t, buf.String(), "attempt=2")
	})

	t.Run("number of retries matches delay count", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", errors.New("always fail")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
	})
}
