package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.VisitLog = (*LoggingVisitLog)(nil)

// LoggingVisitLog wraps a VisitLog with debug logging.
type LoggingVisitLog struct {
	next   pagetrim.VisitLog
	logger *slog.Logger
}

// NewLoggingVisitLog creates a new LoggingVisitLog.
func NewLoggingVisitLog(next pagetrim.VisitLog, logger *slog.Logger) *LoggingVisitLog {
	return &LoggingVisitLog{next: next, logger: logger}
}

// RecordVisit delegates to the wrapped log and logs the visit outcome.
func (l *LoggingVisitLog) RecordVisit(ctx context.Context, v *pagetrim.Visit) (err error) {
	defer func(begin time.Time) {
		l.logger.Info("record visit",
			"run", v.RunID,
			"index", v.Index,
			"url", v.URL,
			"state", v.State.String(),
			"feedback", v.Feedback.String(),
			"visit_err", v.Err,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.RecordVisit(ctx, v)
}

// FindVisits delegates to the wrapped log.
func (l *LoggingVisitLog) FindVisits(ctx context.Context, filter pagetrim.VisitFilter) (visits []*pagetrim.Visit, err error) {
	defer func(begin time.Time) {
		l.logger.Info("find visits",
			"count", len(visits),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.FindVisits(ctx, filter)
}
