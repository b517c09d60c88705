package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pagetrim"
)

// DomainScope returns a scope accepting page addresses whose host is domain.
// Hosts compare case-insensitively and ports are ignored. The domain may be
// given as a bare host or as a URL.
func DomainScope(domain string) (pagetrim.ScopeFunc, error) {
	domain = strings.TrimSpace(domain)
	if strings.Contains(domain, "://") {
		return HostScope(domain)
	}
	want := hostKey(domain)
	if want == "" {
		return nil, pagetrim.Errorf(pagetrim.EINVALID, "domain required")
	}
	return hostEquals(want), nil
}

// HostScope returns a scope restricted to the host of seedURL.
func HostScope(seedURL string) (pagetrim.ScopeFunc, error) {
	u, err := url.Parse(seedURL)
	if err != nil || u.Hostname() == "" {
		return nil, pagetrim.Errorf(pagetrim.EINVALID, "invalid seed URL %q", seedURL)
	}
	return hostEquals(strings.ToLower(u.Hostname())), nil
}

func hostEquals(want string) pagetrim.ScopeFunc {
	return func(raw string) bool {
		u, err := url.Parse(raw)
		if err != nil {
			return false
		}
		return strings.ToLower(u.Hostname()) == want
	}
}
