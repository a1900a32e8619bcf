package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// PostgresStateStore persists view state in the view_state table
type PostgresStateStore struct {
	db *sql.DB
}

// NewPostgresStateStore creates a store over an open connection
func NewPostgresStateStore(db *sql.DB) *PostgresStateStore {
	return &PostgresStateStore{db: db}
}

var _ StateStoreInterface = (*PostgresStateStore)(nil)

func (s *PostgresStateStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM view_state WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read view state %q", key)
	}
	return value, true, nil
}

func (s *PostgresStateStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO view_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return errors.Wrapf(err, "failed to write view state %q", key)
	}
	return nil
}
