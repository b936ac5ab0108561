package cache

import (
	"context"
	"time"
)

// NullCache turns memoization off: every lookup misses and every write is
// dropped, so the engine recomputes each result. It backs the "none" cache
// backend.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear has nothing to remove.
func (c *NullCache) Clear(ctx context.Context, prefix string) (int, error) {
	return 0, nil
}

func (c *NullCache) Close() error {
	return nil
}

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
