// Package state persists the client's durable key/value state, most notably
// the active account id under the "accountId" key.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/werkmate/werkmate-cli/internal/dbx"
)

// Store is the durable key/value state of the client.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	SetMany(ctx context.Context, kv map[string]string) error
	Clear(ctx context.Context) error
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the value stored under key, or "" when the key is absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get state[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	return upsert(ctx, s.db, key, value)
}

// SetMany writes all pairs in one transaction, so readers never observe a
// partially updated set of keys.
func (s *SQLiteStore) SetMany(ctx context.Context, kv map[string]string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range kv {
			if err := upsert(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM state`)
	if err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func upsert(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set state[%s]: %w", key, err)
	}
	return nil
}
