package crawl

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/pagetrim"
	"golang.org/x/time/rate"
)

var _ pagetrim.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter holds one token bucket per host so that requests to
// different hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, without bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to domain is allowed. Hosts are compared
// case-insensitively and without port.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := hostKey(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// hostKey lowercases a host and drops any port.
func hostKey(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}
