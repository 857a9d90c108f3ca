// Package content provides typed, cached access to the content collections
// read by the diagnostic engine.
package content

import (
	"sync"
	"sync/atomic"
	"time"
)

// Cache holds loaded collections in an immutable snapshot.
// Readers never lock: they load the current snapshot pointer. Writers copy the
// snapshot, add their entry and swap the pointer, so a reader never observes a
// half-updated collection.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	generation uint64
	createdAt  time.Time
	entries    map[string]any
}

// NewCache creates a cache. A zero ttl keeps entries until Clear is called.
func NewCache(ttl time.Duration) *Cache {
	return newCacheWithClock(ttl, time.Now)
}

func newCacheWithClock(ttl time.Duration, now func() time.Time) *Cache {
	c := &Cache{ttl: ttl, now: now}
	c.snap.Store(&snapshot{createdAt: now(), entries: map[string]any{}})
	return c
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	s := c.current()
	v, ok := s.entries[key]
	return v, ok
}

// Generation identifies the current snapshot. It changes on every Clear or expiry.
func (c *Cache) Generation() uint64 {
	return c.current().generation
}

// PutIfGeneration stores value under key unless the cache was cleared since
// generation was read. It reports whether the value was stored.
func (c *Cache) PutIfGeneration(key string, value any, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.snap.Load()
	if old.generation != generation {
		return false
	}
	entries := make(map[string]any, len(old.entries)+1)
	for k, v := range old.entries {
		entries[k] = v
	}
	entries[key] = value
	c.snap.Store(&snapshot{generation: old.generation, createdAt: old.createdAt, entries: entries})
	return true
}

// Clear drops every entry, for instance after content was re-imported.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(c.snap.Load())
}

func (c *Cache) current() *snapshot {
	s := c.snap.Load()
	if c.ttl <= 0 || c.now().Sub(s.createdAt) < c.ttl {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may already have expired it.
	if latest := c.snap.Load(); latest != s {
		return latest
	}
	return c.reset(s)
}

func (c *Cache) reset(old *snapshot) *snapshot {
	fresh := &snapshot{generation: old.generation + 1, createdAt: c.now(), entries: map[string]any{}}
	c.snap.Store(fresh)
	return fresh
}
