package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.ArtifactStore = (*LoggingArtifactStore)(nil)

// LoggingArtifactStore wraps an ArtifactStore with debug logging.
type LoggingArtifactStore struct {
	next   pagetrim.ArtifactStore
	logger *slog.Logger
}

// NewLoggingArtifactStore creates a new LoggingArtifactStore.
func NewLoggingArtifactStore(next pagetrim.ArtifactStore, logger *slog.Logger) *LoggingArtifactStore {
	return &LoggingArtifactStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs where the artifact went.
func (s *LoggingArtifactStore) Save(ctx context.Context, index int, content string) (location string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("save artifact",
			"index", index,
			"location", location,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, index, content)
}
