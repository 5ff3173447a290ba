package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/phaseguide/internal/db"
	"github.com/alexanderramin/phaseguide/internal/domain"
)

// eventTimeLayout is fixed width so occurred_at sorts as text.
const eventTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteProgressEventRepo implements ProgressEventRepo on progress_events.
type SQLiteProgressEventRepo struct {
	db db.DBTX
}

func NewSQLiteProgressEventRepo(conn db.DBTX) *SQLiteProgressEventRepo {
	return &SQLiteProgressEventRepo{db: conn}
}

func (r *SQLiteProgressEventRepo) Append(ctx context.Context, e *domain.ProgressEvent) error {
	query := `INSERT INTO progress_events (id, project_id, action, phase, module, occurred_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM progress_events))`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		string(e.Action),
		string(e.Phase),
		string(e.Module),
		e.OccurredAt.UTC().Format(eventTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting progress event: %w", err)
	}
	return nil
}

func (r *SQLiteProgressEventRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.ProgressEvent, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, project_id, action, phase, module, occurred_at FROM (
			SELECT id, project_id, action, phase, module, occurred_at, seq
			FROM progress_events WHERE project_id = ?
			ORDER BY seq DESC, occurred_at DESC, id DESC LIMIT ?
		) ORDER BY seq ASC, occurred_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing progress events: %w", err)
	}
	defer rows.Close()

	var events []*domain.ProgressEvent
	for rows.Next() {
		var e domain.ProgressEvent
		var action, phase, module, occurredAt string
		if err := rows.Scan(&e.ID, &e.ProjectID, &action, &phase, &module, &occurredAt); err != nil {
			return nil, fmt.Errorf("scanning progress event row: %w", err)
		}
		e.Action = domain.ProgressAction(action)
		e.Phase = domain.PhaseID(phase)
		e.Module = domain.ModuleID(module)
		e.OccurredAt, err = time.Parse(time.RFC3339Nano, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parsing occurred_at: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress events: %w", err)
	}
	return events, nil
}
