package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore persists collection snapshots in a single key/blob table. The
// portal keeps its working state in memory; the table only has to survive
// restarts, so one row per collection is all the schema there is.
type PgStore struct {
	db *pgxpool.Pool
}

// New ensures the snapshot table exists and returns a PgStore.
func New(ctx context.Context, db *pgxpool.Pool) (*PgStore, error) {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS portal_state (
		key VARCHAR(64) PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	return &PgStore{db: db}, nil
}

// Load returns the blob stored under key, if any.
func (s *PgStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query := `
		SELECT payload
		FROM portal_state
		WHERE key = $1
	`

	var blob []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error loading snapshot %q: %w", key, err)
	}

	return blob, true, nil
}

// Save upserts the blob under key.
func (s *PgStore) Save(ctx context.Context, key string, blob []byte) error {
	query := `
		INSERT INTO portal_state (key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET payload = $2, updated_at = $3
	`

	if _, err := s.db.Exec(ctx, query, key, blob, time.Now()); err != nil {
		return fmt.Errorf("error saving snapshot %q: %w", key, err)
	}

	return nil
}
