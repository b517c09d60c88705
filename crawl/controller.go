package crawl

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagetrim"
)

// Controller turns one page address into a Visit: it fetches the page,
// simplifies it, persists the result as an artifact named by the visit index
// and decides whether the page's links may be followed.
//
// Controller is safe for concurrent use; the visit counter is the only shared
// state. A page failure never stops the crawl, it is carried in Visit.Err.
type Controller struct {
	Fetcher    pagetrim.Fetcher
	Parser     pagetrim.Parser
	Simplifier pagetrim.Simplifier
	Renderer   pagetrim.Renderer
	Artifacts  pagetrim.ArtifactStore

	// Converter, when set, turns the simplified markup into the artifact
	// content (for example markdown).
	Converter pagetrim.Converter

	// Links, when set, collects outbound links of pages that may be followed.
	Links pagetrim.LinkExtractor

	// Visits, when set, receives every completed visit.
	Visits pagetrim.VisitLog

	// Scope restricts which pages are fetched and followed. Nil accepts all.
	Scope pagetrim.ScopeFunc

	RetryDelays []time.Duration
	RunID       string
	Logger      *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	visited atomic.Int64
}

// Visited returns the number of visit indexes handed out so far.
func (c *Controller) Visited() int {
	return int(c.visited.Load())
}

// Visit processes the page at url. If ctx is already done the visit is
// abandoned before any side effect: no index is consumed and Index is -1.
func (c *Controller) Visit(ctx context.Context, url string) *pagetrim.Visit {
	if err := ctx.Err(); err != nil {
		return &pagetrim.Visit{RunID: c.RunID, Index: -1, URL: url, Err: err}
	}

	v := &pagetrim.Visit{
		RunID:     c.RunID,
		Index:     int(c.visited.Add(1) - 1),
		URL:       url,
		State:     pagetrim.StateFetching,
		VisitedAt: c.now(),
	}
	c.run(ctx, v)

	if c.Visits != nil {
		// The visit already happened; record it even if the crawl is stopping.
		if err := c.Visits.RecordVisit(context.WithoutCancel(ctx), v); err != nil && c.Logger != nil {
			c.Logger.Warn("record visit failed", "run", v.RunID, "index", v.Index, "url", v.URL, "err", err)
		}
	}
	return v
}

func (c *Controller) run(ctx context.Context, v *pagetrim.Visit) {
	if c.Scope != nil && !c.Scope(v.URL) {
		v.State = pagetrim.StateDecision
		return
	}

	markup, err := FetchWithRetryDelays(ctx, v.URL, c.Fetcher.Fetch, c.Logger, c.retryDelays())
	if err != nil {
		v.Err = pagetrim.Errorf(pagetrim.EFETCH, "fetch %s: %v", v.URL, err)
		return
	}
	v.OriginalBytes = len(markup)

	doc, err := c.Parser.Parse(markup)
	if err != nil {
		v.Err = pagetrim.Errorf(pagetrim.EPARSE, "parse %s: %v", v.URL, err)
		return
	}
	v.State = pagetrim.StateParsed

	c.Simplifier.Simplify(doc)
	v.State = pagetrim.StateSimplified

	// Persisting is best-effort: a page that could not be saved is still in
	// scope and its links are still followed.
	if err := c.persist(ctx, v, doc); err != nil {
		v.Err = err
	} else {
		v.State = pagetrim.StatePersisted
	}

	v.State = pagetrim.StateDecision
	v.Feedback = pagetrim.FollowAll
	if c.Links != nil {
		links, err := c.Links.ExtractLinks(markup, v.URL)
		if err == nil {
			v.Links = links
		} else if c.Logger != nil {
			c.Logger.Debug("link extraction failed", "url", v.URL, "err", err)
		}
	}
}

func (c *Controller) persist(ctx context.Context, v *pagetrim.Visit, doc *pagetrim.Document) error {
	simplified, err := c.Renderer.Render(doc)
	if err != nil {
		return pagetrim.Errorf(pagetrim.EPERSIST, "render %s: %v", v.URL, err)
	}
	v.SimplifiedBytes = len(simplified)

	content := simplified
	if c.Converter != nil {
		if content, err = c.Converter.Convert(simplified); err != nil {
			return pagetrim.Errorf(pagetrim.EPERSIST, "convert %s: %v", v.URL, err)
		}
	}
	v.ContentHash = ComputeHash(content)

	location, err := c.Artifacts.Save(ctx, v.Index, content)
	if err != nil {
		return pagetrim.Errorf(pagetrim.EPERSIST, "save artifact %d: %v", v.Index, err)
	}
	v.Artifact = location
	return nil
}

func (c *Controller) retryDelays() []time.Duration {
	if c.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return c.RetryDelays
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
