// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Cache stores provider results keyed by (provider, topic). Entries older
// than maxAge are treated as missing. Invalidation is explicit; see
// store.Store.Invalidate.
type Cache interface {
	Get(ctx context.Context, provider, topic string, maxAge time.Duration) ([]byte, bool, error)
	Put(ctx context.Context, provider, topic string, payload []byte) error
}

// Cached wraps a Source with a Cache. Only successful, non-empty results
// are stored. Cache errors are logged and never fail the fetch.
type Cached[T any] struct {
	src   Source[T]
	cache Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCached returns src wrapped with cache.
func NewCached[T any](src Source[T], cache Cache, ttl time.Duration, log zerolog.Logger) *Cached[T] {
	return &Cached[T]{src: src, cache: cache, ttl: ttl, log: log}
}

// Name returns the wrapped provider's name, which is also the cache key.
func (c *Cached[T]) Name() string { return c.src.Name() }

// Fetch serves topic from the cache when a fresh entry exists and falls
// through to the wrapped source otherwise.
func (c *Cached[T]) Fetch(ctx context.Context, topic string) ([]T, error) {
	payload, ok, err := c.cache.Get(ctx, c.src.Name(), topic, c.ttl)
	switch {
	case err != nil:
		c.log.Warn().Err(err).Str("provider", c.src.Name()).Msg("research cache read failed")
	case ok:
		var items []T
		if err := json.Unmarshal(payload, &items); err == nil {
			c.log.Debug().Str("provider", c.src.Name()).Str("topic", topic).Msg("research cache hit")
			return items, nil
		}
		c.log.Warn().Str("provider", c.src.Name()).Msg("discarding unreadable research cache entry")
	}

	items, err := c.src.Fetch(ctx, topic)
	if err != nil || len(items) == 0 {
		return items, err
	}

	data, err := json.Marshal(items)
	if err == nil {
		err = c.cache.Put(ctx, c.src.Name(), topic, data)
	}
	if err != nil {
		c.log.Warn().Err(err).Str("provider", c.src.Name()).Msg("research cache write failed")
	}
	return items, nil
}
