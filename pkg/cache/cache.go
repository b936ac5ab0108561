// Package cache provides the storage behind rotacheck's memoization layer.
//
// Validation and constraint results are pure functions of the lineup, so
// they can be cached under a key derived from a stable fingerprint of the
// lineup (see [Keyer]). Values are opaque byte slices; the engine package
// owns their encoding.
//
// # Backends
//
//   - [MemoryCache]: bounded LRU with per-entry TTL, the default for a
//     single process.
//   - [RedisCache]: shared cache for several server replicas.
//   - [NullCache]: never stores anything; disables memoization.
//
// Caches are passed to the engine explicitly. There is no package-level
// cache, so tests and independent engines never share entries.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. hit is false on a miss or an expired
	// entry; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop rotacheck's entries in
// bulk. Clear removes every validation and bounds entry whose key starts with
// prefix and returns how many it removed.
type Clearer interface {
	Clear(ctx context.Context, prefix string) (int, error)
}

// StatsReporter is implemented by caches that keep hit and miss counters.
type StatsReporter interface {
	Stats() Stats
}

// Default TTLs for cached results. Results never go stale (they depend only
// on the key), so the TTLs exist to bound memory in long-running servers.
const (
	TTLValidation = 10 * time.Minute
	TTLBounds     = 2 * time.Minute
)
