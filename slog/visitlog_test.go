package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/mock"
	ptslog "github.com/fwojciec/pagetrim/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingVisitLog_RecordVisit(t *testing.T) {
	t.Parallel()

	t.Run("logs visit outcome", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var recorded *pagetrim.Visit
		inner := &mock.VisitLog{
			RecordVisitFn: func(_ context.Context, v *pagetrim.Visit) error {
				recorded = v
				return nil
			},
		}

		log := ptslog.NewLoggingVisitLog(inner, logger)
		v := &pagetrim.Visit{
			RunID:    "run-1",
			Index:    2,
			URL:      "https://example.com/docs",
			State:    pagetrim.StateDecision,
			Feedback: pagetrim.FollowAll,
		}
		err := log.RecordVisit(context.Background(), v)

		require.NoError(t, err)
		assert.Same(t, v, recorded)
		output := buf.String()
		assert.Contains(t, output, "record visit")
		assert.Contains(t, output, "run=run-1")
		assert.Contains(t, output, "index=2")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "state=decision")
		assert.Contains(t, output, "feedback=follow_all")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.VisitLog{
			RecordVisitFn: func(_ context.Context, _ *pagetrim.Visit) error {
				return errors.New("database is locked")
			},
		}

		log := ptslog.NewLoggingVisitLog(inner, logger)
		err := log.RecordVisit(context.Background(), &pagetrim.Visit{RunID: "r"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"database is locked\"")
	})
}

func TestLoggingVisitLog_FindVisits(t *testing.T) {
	t.Parallel()

	t.Run("logs result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.VisitLog{
			FindVisitsFn: func(_ context.Context, _ pagetrim.VisitFilter) ([]*pagetrim.Visit, error) {
				return []*pagetrim.Visit{{Index: 0}, {Index: 1}}, nil
			},
		}

		log := ptslog.NewLoggingVisitLog(inner, logger)
		visits, err := log.FindVisits(context.Background(), pagetrim.VisitFilter{})

		require.NoError(t, err)
		assert.Len(t, visits, 2)
		assert.Contains(t, buf.String(), "count=2")
	})
}
