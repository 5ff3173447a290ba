package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Browser-style local storage: one JSON document per key.
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS progress_events (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL,
		action      TEXT NOT NULL
		            CHECK(action IN ('initialize','reset','import','unlock_phase','unlock_module','complete_module','set_phase')),
		phase       TEXT NOT NULL DEFAULT '',
		module      TEXT NOT NULL DEFAULT '',
		occurred_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_progress_events_project ON progress_events(project_id, occurred_at)`,

	// Insertion counter so events logged within the same second keep their order.
	`ALTER TABLE progress_events ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
}
