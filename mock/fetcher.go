package mock

import (
	"context"

	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagetrim.Fetcher. A nil CloseFn
// makes Close a no-op, since most crawl tests never close their fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
