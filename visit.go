package pagetrim

import (
	"context"
	"time"
)

// Feedback tells the crawl driver whether links discovered on a page may be
// visited.
type Feedback int

// Feedback values. The zero value is FollowNone.
const (
	FollowNone Feedback = iota
	FollowAll
)

func (f Feedback) String() string {
	if f == FollowAll {
		return "follow_all"
	}
	return "follow_none"
}

// VisitState is the last stage a page visit reached.
type VisitState int

// Visit stages in the order they are reached.
const (
	StateFetching VisitState = iota
	StateParsed
	StateSimplified
	StatePersisted
	StateDecision
)

func (s VisitState) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateParsed:
		return "parsed"
	case StateSimplified:
		return "simplified"
	case StatePersisted:
		return "persisted"
	case StateDecision:
		return "decision"
	default:
		return "unknown"
	}
}

// Visit records the outcome of processing one page.
type Visit struct {
	RunID    string     `json:"runId"`
	Index    int        `json:"index"`
	URL      string     `json:"url"`
	State    VisitState `json:"state"`
	Feedback Feedback   `json:"feedback"`

	// Sizes of the fetched markup and the simplified artifact content.
	OriginalBytes   int `json:"originalBytes"`
	SimplifiedBytes int `json:"simplifiedBytes"`

	ContentHash string `json:"contentHash"`
	Artifact    string `json:"artifact"`

	// Links discovered on the page. Only populated when Feedback is FollowAll.
	Links []Link `json:"-"`

	// Err is the page-local failure, if any. It is never fatal to a crawl.
	Err error `json:"-"`

	VisitedAt time.Time `json:"visitedAt"`
}

// Reduction returns the fraction of the original markup removed by
// simplification, or 0 when nothing was fetched.
func (v *Visit) Reduction() float64 {
	if v.OriginalBytes == 0 {
		return 0
	}
	return float64(v.OriginalBytes-v.SimplifiedBytes) / float64(v.OriginalBytes)
}

// ScopeFunc reports whether a page address belongs to the crawl. Only
// in-scope pages may yield FollowAll.
type ScopeFunc func(url string) bool

// ArtifactStore persists the simplified text of a visited page.
type ArtifactStore interface {
	// Save writes content as the artifact of the visit with the given index
	// and returns its location. The output location is created if absent.
	Save(ctx context.Context, index int, content string) (location string, err error)
}

// VisitLog records visits for later inspection.
type VisitLog interface {
	// RecordVisit stores a visit. Recording the same run and index twice
	// returns EINVALID.
	RecordVisit(ctx context.Context, v *Visit) error

	// FindVisits retrieves visits matching the filter, ordered by index.
	FindVisits(ctx context.Context, filter VisitFilter) ([]*Visit, error)
}

// VisitFilter represents a filter for FindVisits.
type VisitFilter struct {
	RunID    *string   `json:"runId"`
	URL      *string   `json:"url"`
	Feedback *Feedback `json:"feedback"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
