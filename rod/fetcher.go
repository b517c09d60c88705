// Package rod fetches pages through a headless Chrome browser so that
// JavaScript-rendered content is present in the returned markup.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagetrim"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements pagetrim.Fetcher at compile time.
var _ pagetrim.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	timeout     time.Duration
	renderDelay time.Duration
	maxPages    int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the deadline for loading one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderDelay waits d after the load event before serializing the page,
// giving client-side rendering time to settle.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithRecycleAfter sets how many pages one browser process serves.
func WithRecycleAfter(pages int) Option {
	return func(f *Fetcher) {
		f.maxPages = pages
	}
}

// NewFetcher launches a headless browser.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout, maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, release, err := f.manager.Acquire()
	if err != nil {
		return "", err
	}
	defer release()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	// Closed without ctx so a timed-out page is still torn down.
	defer page.Close()

	p := page.Context(ctx)
	html, err := func() (string, error) {
		if err := p.Navigate(url); err != nil {
			return "", err
		}
		if err := p.WaitLoad(); err != nil {
			return "", err
		}
		if f.renderDelay > 0 {
			select {
			case <-time.After(f.renderDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return p.HTML()
	}()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("fetch %s: %w", url, ctxErr)
		}
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	return html, nil
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
