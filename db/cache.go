// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/sponsor-eval/session"
)

// SessionCache is a session.Cache backed by the session_cache table
type SessionCache struct {
	db *sql.DB
}

func NewSessionCache(db *sql.DB) *SessionCache {
	return &SessionCache{db: db}
}

func (c *SessionCache) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `
		SELECT payload FROM session_cache WHERE cache_key = $1
	`, key).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session cache: %w", err)
	}

	return []byte(payload), nil
}

func (c *SessionCache) Put(ctx context.Context, key string, value []byte) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO session_cache (cache_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write session cache: %w", err)
	}

	return nil
}

func (c *SessionCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM session_cache WHERE cache_key = $1
	`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session cache entry: %w", err)
	}

	return nil
}
