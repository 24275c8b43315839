package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dadmind/internal/domain"

	"github.com/jmoiron/sqlx"
)

const (
	sqliteGetQuery = `SELECT value FROM kv_store WHERE key = ? AND (expires_at = 0 OR expires_at > ?)`
	sqliteSetQuery = `INSERT INTO kv_store (key, value, expires_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`
	sqliteDeleteQuery = `DELETE FROM kv_store WHERE key = ?`
)

// SQLiteCacheAdapter implements domain.Cache on the embedded kv_store table.
// Expired rows are filtered on read rather than swept.
type SQLiteCacheAdapter struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLiteCacheAdapter expects a database whose schema has been ensured.
func NewSQLiteCacheAdapter(db *sqlx.DB) domain.Cache {
	return &SQLiteCacheAdapter{db: db, now: time.Now}
}

func (s *SQLiteCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.GetContext(ctx, &value, sqliteGetQuery, key, s.now().Unix()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrCacheMiss
		}
		return "", fmt.Errorf("sqlite get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	var expiresAt int64
	if expiration > 0 {
		expiresAt = s.now().Add(expiration).Unix()
	}
	if _, err := s.db.ExecContext(ctx, sqliteSetQuery, key, value, expiresAt); err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteCacheAdapter) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, sqliteDeleteQuery, key); err != nil {
		return fmt.Errorf("sqlite delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteCacheAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
