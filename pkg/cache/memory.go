package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a MemoryCache created with a non-positive size.
const DefaultMaxEntries = 4096

// MemoryCache is an in-process LRU cache with per-entry expiry.
//
// Thread Safety:
//
//	MemoryCache is safe for concurrent use. A single mutex guards the map
//	and the recency list; every operation but Clear is O(1).
type MemoryCache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*list.Element
	lru        *list.List // front = most recently used
	now        func() time.Time
	closed     bool

	hits      int64
	misses    int64
	evictions int64
}

type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time // zero = never
}

// Stats is a snapshot of MemoryCache counters.
type Stats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// NewMemoryCache creates a cache holding at most maxEntries values.
// A non-positive maxEntries selects DefaultMaxEntries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		now:        time.Now,
	}
}

// Get returns a copy of the stored value and marks it most recently used.
// Expired entries are removed and reported as misses.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, false, ErrClosed
	}

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false, nil
	}
	e := el.Value.(*memoryEntry)
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.removeElement(el)
		c.misses++
		return nil, false, nil
	}

	c.lru.MoveToFront(el)
	c.hits++
	return append([]byte(nil), e.data...), true, nil
}

// Set stores a copy of data, evicting the least recently used entry when
// the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	stored := append([]byte(nil), data...)

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*memoryEntry)
		e.data, e.expiresAt = stored, expiresAt
		c.lru.MoveToFront(el)
		return nil
	}

	for c.lru.Len() >= c.maxEntries {
		c.removeElement(c.lru.Back())
		c.evictions++
	}
	c.entries[key] = c.lru.PushFront(&memoryEntry{key: key, data: stored, expiresAt: expiresAt})
	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
	return nil
}

// Clear removes every entry whose key starts with prefix but keeps the
// counters. An empty prefix empties the cache.
func (c *MemoryCache) Clear(ctx context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	n := 0
	for key, el := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.removeElement(el)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored entries, including expired ones not yet
// collected.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:   c.lru.Len(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Close drops all entries. Subsequent Get and Set calls return ErrClosed.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.entries = nil
	c.lru.Init()
	return nil
}

// removeElement must be called with c.mu held.
func (c *MemoryCache) removeElement(el *list.Element) {
	c.lru.Remove(el)
	delete(c.entries, el.Value.(*memoryEntry).key)
}

// Ensure MemoryCache implements Cache, Clearer and StatsReporter.
var (
	_ Cache         = (*MemoryCache)(nil)
	_ Clearer       = (*MemoryCache)(nil)
	_ StatsReporter = (*MemoryCache)(nil)
)
