package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"motorheat/internal/models"

	"github.com/google/uuid"
)

// sqliteTimestamp is how event times are written; it sorts lexically.
const sqliteTimestamp = "2006-01-02 15:04:05"

const insertEventSQL = `
		INSERT INTO run_events (id, run_id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// Append inserts a new event, filling EventID and OccurredAt when empty.
func (r *EventSQLite) Append(ctx context.Context, e models.RunEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	var meta *string
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata of event %s: %w", e.EventID, err)
		}
		s := string(b)
		meta = &s
	}

	var runID *string
	if e.RunID != "" {
		runID = &e.RunID
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		runID,
		e.OccurredAt.UTC().Format(sqliteTimestamp),
		normalizeType(e.Type),
		e.Description,
		meta,
	)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", e.EventID, err)
	}
	return nil
}

// List returns events matching f, oldest first.
func (r *EventSQLite) List(ctx context.Context, f EventFilter) ([]models.RunEvent, error) {
	var (
		conds []string
		args  []any
	)
	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC().Format(sqliteTimestamp))
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC().Format(sqliteTimestamp))
	}
	if typ := normalizeType(f.Type); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if runID := strings.TrimSpace(f.RunID); runID != "" {
		conds = append(conds, "run_id = ?")
		args = append(args, runID)
	}

	q := `SELECT id, run_id, occurred_at, type, message, meta FROM run_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := make([]models.RunEvent, 0, 64)
	for rows.Next() {
		var (
			ev      models.RunEvent
			runID   sql.NullString
			at      string
			metaStr sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &runID, &at, &ev.Type, &ev.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.RunID = runID.String
		if ev.OccurredAt, err = parseTimestamp(at); err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.EventID, err)
		}
		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseTimestamp accepts the stored layout as well as RFC3339, which the
// sqlite driver produces when a column was written as time.Time.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{sqliteTimestamp, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
