package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/bloom"
)

// Compile-time interface verification.
var _ pagetrim.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with Bloom filter deduplication.
// Links are popped shallowest first and in insertion order within a depth,
// which makes the crawl breadth-first.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
	seq   uint64
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URLs differing only by fragment are considered duplicates.
func (f *Frontier) Push(link pagetrim.Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.TestAndAdd(url) {
		return false
	}

	link.URL = url
	heap.Push(f.queue, queued{link: link, seq: f.seq})
	f.seq++
	return true
}

// Pop returns the shallowest queued link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (pagetrim.Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return pagetrim.Link{}, false
	}
	q, _ := heap.Pop(f.queue).(queued)
	return q.link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.IndexByte(url, '#'); idx != -1 {
		return url[:idx]
	}
	return url
}

type queued struct {
	link pagetrim.Link
	seq  uint64
}

// linkHeap is a min-heap on (depth, insertion order).
type linkHeap []queued

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].link.Depth != h[j].link.Depth {
		return h[i].link.Depth < h[j].link.Depth
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	q, _ := x.(queued)
	*h = append(*h, q)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
