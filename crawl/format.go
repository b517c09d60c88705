package crawl

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagetrim"
)

// ComputeHash returns the xxhash of content as lowercase hex.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatReduction formats the size decrease of a visit as a percentage.
func FormatReduction(v *pagetrim.Visit) string {
	return fmt.Sprintf("%.1f%%", v.Reduction()*100)
}

// FormatVisit renders a one-line summary of a visit for progress output.
func FormatVisit(v *pagetrim.Visit, urlWidth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", v.Index, TruncateURL(v.URL, urlWidth))
	switch {
	case v.Index < 0:
		b.WriteString(" skipped")
	case v.OriginalBytes == 0 && v.Err == nil:
		fmt.Fprintf(&b, " %s", v.Feedback)
	default:
		fmt.Fprintf(&b, " %s -> %s (-%s) %s",
			FormatBytes(v.OriginalBytes), FormatBytes(v.SimplifiedBytes), FormatReduction(v), v.Feedback)
	}
	if v.Err != nil {
		fmt.Fprintf(&b, ": %s", pagetrim.ErrorMessage(v.Err))
	}
	return b.String()
}
