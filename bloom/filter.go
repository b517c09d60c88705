// Package bloom provides probabilistic URL deduplication for the crawl
// frontier.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter records visited page addresses. It reports false positives at the
// configured rate and never false negatives, so a crawl may skip a page it
// has not seen but never visits a page twice.
//
// Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected addresses with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records an address.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether an address may have been recorded.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd records an address and reports whether it may have been
// recorded before.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of recorded addresses.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
