package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/phaseguide/internal/db"
)

// SQLiteKVRepo implements KVRepo on the kv_store table.
type SQLiteKVRepo struct {
	db db.DBTX
}

func NewSQLiteKVRepo(conn db.DBTX) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn}
}

func (r *SQLiteKVRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteKVRepo) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}
