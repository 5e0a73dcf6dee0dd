// memory.go provides an in-process mockup cache for single-instance
// deployments without Valkey, and for tests. Entries expire after the TTL
// and are dropped lazily on read or by Sweep. The cache holds at most
// maxEntries results; inserting past that evicts the oldest.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aiprintly/internal/models"
)

// DefaultMaxEntries bounds a MemoryCache created with maxEntries <= 0.
const DefaultMaxEntries = 10_000

type memoryEntry struct {
	result    models.MockupResult
	expiresAt time.Time
}

// MemoryCache is a concurrency-safe in-memory mockup cache.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryCache creates an empty cache. A zero ttl selects DefaultMockupTTL
// and maxEntries <= 0 selects DefaultMaxEntries.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if ttl == 0 {
		ttl = DefaultMockupTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns a copy of the cached result, or (nil, nil) on miss or expiry.
func (c *MemoryCache) Get(_ context.Context, key string) (*models.MockupResult, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check: another writer may have refreshed the entry.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, nil
	}
	result := e.result
	return &result, nil
}

// Set stores a copy of result under key. A new key on a full cache first
// drops expired entries, then evicts the entry closest to expiry.
func (c *MemoryCache) Set(_ context.Context, key string, result *models.MockupResult) error {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.makeRoom(now)
	}
	c.entries[key] = memoryEntry{result: *result, expiresAt: now.Add(c.ttl)}
	return nil
}

// makeRoom frees at least one slot. Callers hold c.mu.
func (c *MemoryCache) makeRoom(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			continue
		}
		if !found || e.expiresAt.Before(oldest) {
			oldestKey, oldest, found = k, e.expiresAt, true
		}
	}
	if found && len(c.entries) >= c.maxEntries {
		delete(c.entries, oldestKey)
		slog.Debug("memory mockup cache evicted entry", "key", oldestKey)
	}
}

// Invalidate removes a single entry.
func (c *MemoryCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll clears the entire cache.
func (c *MemoryCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	slog.Debug("memory mockup cache fully cleared")
}

// Sweep drops expired entries and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (c *MemoryCache) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				slog.Debug("memory mockup cache swept", "removed", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
