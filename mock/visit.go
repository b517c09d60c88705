package mock

import (
	"context"

	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of pagetrim.ArtifactStore.
type ArtifactStore struct {
	SaveFn func(ctx context.Context, index int, content string) (string, error)
}

func (s *ArtifactStore) Save(ctx context.Context, index int, content string) (string, error) {
	return s.SaveFn(ctx, index, content)
}

var _ pagetrim.VisitLog = (*VisitLog)(nil)

// VisitLog is a mock implementation of pagetrim.VisitLog.
type VisitLog struct {
	RecordVisitFn func(ctx context.Context, v *pagetrim.Visit) error
	FindVisitsFn  func(ctx context.Context, filter pagetrim.VisitFilter) ([]*pagetrim.Visit, error)
}

func (l *VisitLog) RecordVisit(ctx context.Context, v *pagetrim.Visit) error {
	return l.RecordVisitFn(ctx, v)
}

func (l *VisitLog) FindVisits(ctx context.Context, filter pagetrim.VisitFilter) ([]*pagetrim.Visit, error) {
	return l.FindVisitsFn(ctx, filter)
}
