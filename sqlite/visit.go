package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagetrim"
)

// Compile-time interface verification.
var _ pagetrim.VisitLog = (*VisitLog)(nil)

// VisitLog implements pagetrim.VisitLog using SQLite.
type VisitLog struct {
	db *DB
}

// NewVisitLog creates a new VisitLog.
func NewVisitLog(db *DB) *VisitLog {
	return &VisitLog{db: db}
}

// RecordVisit stores a visit. Abandoned visits (negative index) are rejected.
func (s *VisitLog) RecordVisit(ctx context.Context, v *pagetrim.Visit) error {
	if v.RunID == "" {
		return pagetrim.Errorf(pagetrim.EINVALID, "visit run ID required")
	}
	if v.Index < 0 {
		return pagetrim.Errorf(pagetrim.EINVALID, "visit index must not be negative")
	}

	code, message := errorColumns(v.Err)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (run_id, idx, url, state, feedback, original_bytes, simplified_bytes,
			content_hash, artifact, error_code, error_message, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, idx) DO NOTHING
	`, v.RunID, v.Index, v.URL, int(v.State), int(v.Feedback), v.OriginalBytes, v.SimplifiedBytes,
		v.ContentHash, v.Artifact, code, message, v.VisitedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagetrim.Errorf(pagetrim.EINVALID, "visit %d already recorded for run %s", v.Index, v.RunID)
	}
	return nil
}

// FindVisits retrieves visits matching the filter, ordered by run and index.
func (s *VisitLog) FindVisits(ctx context.Context, filter pagetrim.VisitFilter) ([]*pagetrim.Visit, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT run_id, idx, url, state, feedback, original_bytes, simplified_bytes,
		content_hash, artifact, error_code, error_message, visited_at FROM visits WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Feedback != nil {
		query.WriteString(" AND feedback = ?")
		args = append(args, int(*filter.Feedback))
	}

	query.WriteString(" ORDER BY run_id, idx")
	if filter.Offset > 0 && filter.Limit <= 0 {
		// SQLite requires a LIMIT clause before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*pagetrim.Visit
	for rows.Next() {
		var v pagetrim.Visit
		var state, feedback int
		var code, message, visitedAt string

		if err := rows.Scan(&v.RunID, &v.Index, &v.URL, &state, &feedback, &v.OriginalBytes,
			&v.SimplifiedBytes, &v.ContentHash, &v.Artifact, &code, &message, &visitedAt); err != nil {
			return nil, err
		}

		v.State = pagetrim.VisitState(state)
		v.Feedback = pagetrim.Feedback(feedback)
		if code != "" {
			v.Err = &pagetrim.Error{Code: code, Message: message}
		}
		if v.VisitedAt, err = parseRFC3339(visitedAt, "visited_at"); err != nil {
			return nil, err
		}

		visits = append(visits, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	return visits, nil
}

// errorColumns flattens a visit error into its stored code and message.
func errorColumns(err error) (code, message string) {
	if err == nil {
		return "", ""
	}
	code = pagetrim.ErrorCode(err)
	if code == pagetrim.EINTERNAL {
		return code, err.Error()
	}
	return code, pagetrim.ErrorMessage(err)
}
