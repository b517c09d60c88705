package crawl_test

import (
	"testing"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com/very/long/path/to/documentation"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, ".../to/documentation", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns URL unchanged when exactly max length", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com"
		assert.Equal(t, url, crawl.TruncateURL(url, len(url)))
	})

	t.Run("returns empty string when maxLen is zero", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
	})

	t.Run("returns empty string when maxLen is negative", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		// When maxLen < 4, we can't fit "..." prefix, so return URL prefix
		assert.Equal(t, "htt", crawl.TruncateURL("https://example.com", 3))
		assert.Equal(t, "ht", crawl.TruncateURL("https://example.com", 2))
		assert.Equal(t, "h", crawl.TruncateURL("https://example.com", 1))
	})

	t.Run("handles short URL with small maxLen", func(t *testing.T) {
		t.Parallel()
		// URL shorter than maxLen should return unchanged
		assert.Equal(t, "ab", crawl.TruncateURL("ab", 3))
		assert.Equal(t, "a", crawl.TruncateURL("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatVisit(t *testing.T) {
	t.Parallel()

	t.Run("reports sizes reduction and feedback", func(t *testing.T) {
		t.Parallel()
		v := &pagetrim.Visit{
			Index:           4,
			URL:             "https://example.com/a",
			Feedback:        pagetrim.FollowAll,
			OriginalBytes:   2048,
			SimplifiedBytes: 512,
		}
		assert.Equal(t, "[4] https://example.com/a 2.0 KB -> 512 B (-75.0%) follow_all", crawl.FormatVisit(v, 60))
	})

	t.Run("reports out of scope visit without sizes", func(t *testing.T) {
		t.Parallel()
		v := &pagetrim.Visit{Index: 0, URL: "https://other.com/"}
		assert.Equal(t, "[0] https://other.com/ follow_none", crawl.FormatVisit(v, 60))
	})

	t.Run("appends error message", func(t *testing.T) {
		t.Parallel()
		v := &pagetrim.Visit{
			Index: 2,
			URL:   "https://example.com/b",
			Err:   pagetrim.Errorf(pagetrim.EFETCH, "status 404"),
		}
		assert.Equal(t, "[2] https://example.com/b 0 B -> 0 B (-0.0%) follow_none: status 404", crawl.FormatVisit(v, 60))
	})

	t.Run("marks abandoned visit as skipped", func(t *testing.T) {
		t.Parallel()
		v := &pagetrim.Visit{Index: -1, URL: "https://example.com/c"}
		assert.Equal(t, "[-1] https://example.com/c skipped", crawl.FormatVisit(v, 60))
	})
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("returns consistent hash for same content", func(t *testing.T) {
		t.Parallel()
		content := "test content"
		hash1 := crawl.ComputeHash(content)
		hash2 := crawl.ComputeHash(content)
		assert.Equal(t, hash1, hash2)
	})

	t.Run("returns different hashes for different content", func(t *testing.T) {
		t.Parallel()
		hash1 := crawl.ComputeHash("content a")
		hash2 := crawl.ComputeHash("content b")
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("returns hex string", func(t *testing.T) {
		t.Parallel()
		hash := crawl.ComputeHash("test")
		assert.Regexp(t, `^[0-9a-f]{16}$`, hash)
	})
}
