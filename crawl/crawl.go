// Package crawl drives page visits: a Controller processes a single page and
// a Crawler schedules controller visits over a frontier of discovered links.
package crawl

import (
	"context"
	"net/url"

	"github.com/fwojciec/pagetrim"
	"golang.org/x/sync/errgroup"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 100000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.001

	defaultConcurrency = 10
)

// Visitor processes a single page.
type Visitor interface {
	Visit(ctx context.Context, url string) *pagetrim.Visit
}

var _ Visitor = (*Controller)(nil)

// Crawler visits pages breadth-first starting from a seed address, following
// the links of every visit whose feedback is FollowAll.
type Crawler struct {
	Visitor     Visitor
	Sitemaps    pagetrim.SitemapService
	RateLimiter pagetrim.DomainLimiter

	// Frontier queues discovered links. Nil uses a fresh in-memory Frontier
	// for every run.
	Frontier pagetrim.URLFrontier

	// Filter restricts which discovered links are queued. Nil accepts all.
	Filter *pagetrim.URLFilter

	Concurrency int
	// MaxPages caps the number of visits. Zero means no limit.
	MaxPages int
	// MaxDepth caps the number of hops from the seed. Zero means no limit.
	MaxDepth int
}

// Result holds the outcome of a crawl.
type Result struct {
	Visited   int // visits that consumed an index
	Persisted int // visits that produced an artifact
	Failed    int // visits that carry an error
	Skipped   int // queued links left unvisited by MaxPages or cancellation
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type   ProgressType
	Visit  *pagetrim.Visit
	Queued int
	Result Result
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressVisited
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

type outcome struct {
	link  pagetrim.Link
	visit *pagetrim.Visit
}

// Run crawls from seed until the frontier is exhausted, MaxPages is reached
// or ctx is done. Page failures are counted, never returned; the only
// error is an invalid seed.
func (c *Crawler) Run(ctx context.Context, seed string, progress ProgressFunc) (*Result, error) {
	if u, err := url.Parse(seed); err != nil || u.Host == "" {
		return nil, pagetrim.Errorf(pagetrim.EINVALID, "invalid seed URL %q", seed)
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	}
	frontier.Push(pagetrim.Link{URL: seed})
	c.seedFromSitemaps(ctx, seed, frontier)

	var result Result
	progress(ProgressEvent{Type: ProgressStarted, Queued: frontier.Len()})

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	var g errgroup.Group
	g.SetLimit(concurrency)

	results := make(chan outcome)
	pending, dispatched := 0, 0
	var next *pagetrim.Link

	for {
		if next == nil && ctx.Err() == nil && (c.MaxPages <= 0 || dispatched < c.MaxPages) {
			if link, ok := frontier.Pop(); ok {
				next = &link
			}
		}

		if next != nil {
			link := *next
			work := func() error {
				results <- outcome{link: link, visit: c.visit(ctx, link)}
				return nil
			}
			// With nothing pending no worker can be blocked on results, so
			// waiting for a free slot cannot deadlock.
			started := pending == 0
			if started {
				g.Go(work)
			} else {
				started = g.TryGo(work)
			}
			if started {
				next = nil
				pending++
				dispatched++
				continue
			}
		}

		if pending == 0 {
			break
		}
		o := <-results
		pending--
		c.handle(o, frontier, &result)
		progress(ProgressEvent{Type: ProgressVisited, Visit: o.visit, Queued: frontier.Len(), Result: result})
	}
	_ = g.Wait()

	result.Skipped += frontier.Len()
	progress(ProgressEvent{Type: ProgressFinished, Result: result})
	return &result, nil
}

// visit waits for the rate limiter and hands the link to the visitor.
func (c *Crawler) visit(ctx context.Context, link pagetrim.Link) *pagetrim.Visit {
	if c.RateLimiter != nil {
		if u, err := url.Parse(link.URL); err == nil {
			if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
				return &pagetrim.Visit{Index: -1, URL: link.URL, Err: err}
			}
		}
	}
	return c.Visitor.Visit(ctx, link.URL)
}

// handle accounts for a finished visit and queues the links it allows.
func (c *Crawler) handle(o outcome, frontier pagetrim.URLFrontier, result *Result) {
	v := o.visit
	if v.Index < 0 {
		result.Skipped++
		return
	}
	result.Visited++
	if v.Err != nil {
		result.Failed++
	}
	if v.Artifact != "" {
		result.Persisted++
	}

	if v.Feedback != pagetrim.FollowAll {
		return
	}
	for _, link := range v.Links {
		link.Depth = o.link.Depth + 1
		if c.MaxDepth > 0 && link.Depth > c.MaxDepth {
			continue
		}
		if frontier.Seen(link.URL) {
			continue
		}
		if !c.Filter.Match(link.URL) {
			continue
		}
		frontier.Push(link)
	}
}

// seedFromSitemaps queues sitemap URLs as additional seeds. Sitemaps are
// optional, so discovery failures are ignored.
func (c *Crawler) seedFromSitemaps(ctx context.Context, seed string, frontier pagetrim.URLFrontier) {
	if c.Sitemaps == nil {
		return
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, seed, c.Filter)
	if err != nil {
		return
	}
	for _, u := range urls {
		frontier.Push(pagetrim.Link{URL: u})
	}
}
