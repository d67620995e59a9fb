package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresBlobStore keeps one JSONB row per collection.
type PostgresBlobStore struct {
	DB *sql.DB
}

func NewPostgresBlobStore(db *sql.DB) *PostgresBlobStore {
	return &PostgresBlobStore{DB: db}
}

func (s *PostgresBlobStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create collections table: %w", err)
	}
	return nil
}

func (s *PostgresBlobStore) Read(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.DB.QueryRowContext(ctx, `SELECT body FROM collections WHERE name = $1`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}
	return body, nil
}

const upsertCollection = `
	INSERT INTO collections (name, body, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (name)
	DO UPDATE SET
		body = EXCLUDED.body,
		updated_at = NOW()
`

func (s *PostgresBlobStore) Write(ctx context.Context, name string, data []byte) error {
	if _, err := s.DB.ExecContext(ctx, upsertCollection, name, string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

// Modify locks the collection with a transaction-scoped advisory lock, so writers in
// other processes wait until this read-modify-write commits.
func (s *PostgresBlobStore) Modify(ctx context.Context, name string, fn func(data []byte) ([]byte, error)) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, name); err != nil {
		return fmt.Errorf("lock %s: %w", name, err)
	}

	var body []byte
	err = tx.QueryRowContext(ctx, `SELECT body FROM collections WHERE name = $1`, name).Scan(&body)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("select %s: %w", name, err)
	}

	next, err := fn(body)
	if err != nil {
		return err
	}
	if next == nil {
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, upsertCollection, name, string(next)); err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}
