// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// cacheTopic normalizes topic so "Go " and "go" share an entry.
func cacheTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// Get returns the cached payload for (provider, topic). An entry older than
// maxAge is reported as missing; maxAge <= 0 disables the age check.
func (s *Store) Get(ctx context.Context, provider, topic string, maxAge time.Duration) ([]byte, bool, error) {
	var payload, fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM research_cache WHERE provider = ? AND topic = ?`,
		provider, cacheTopic(topic),
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading research cache: %w", err)
	}

	if maxAge > 0 {
		at, err := time.Parse(timeLayout, fetchedAt)
		if err != nil || s.now().Sub(at) > maxAge {
			return nil, false, nil
		}
	}
	return []byte(payload), true, nil
}

// Put stores payload for (provider, topic), replacing any previous entry.
func (s *Store) Put(ctx context.Context, provider, topic string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO research_cache (provider, topic, payload, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(provider, topic) DO UPDATE SET
			payload=excluded.payload, fetched_at=excluded.fetched_at`,
		provider, cacheTopic(topic), string(payload), s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("writing research cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached results for topic across all providers, or
// the whole cache when topic is empty. It returns the number of entries
// removed.
func (s *Store) Invalidate(ctx context.Context, topic string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if t := cacheTopic(topic); t == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM research_cache`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM research_cache WHERE topic = ?`, t)
	}
	if err != nil {
		return 0, fmt.Errorf("invalidating research cache: %w", err)
	}
	return res.RowsAffected()
}
