package mock

import (
	"context"

	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of pagetrim.URLFrontier.
type URLFrontier struct {
	PushFn func(link pagetrim.Link) bool
	PopFn  func() (pagetrim.Link, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link pagetrim.Link) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (pagetrim.Link, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ pagetrim.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of pagetrim.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
