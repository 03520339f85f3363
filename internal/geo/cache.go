package geo

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Cache stores search results keyed by query.
type Cache interface {
	Get(ctx context.Context, key string) (SearchResult, bool)
	Set(ctx context.Context, key string, result SearchResult) error
}

// cacheKey normalizes a query so trivially different spellings share an entry.
func cacheKey(query string, radius int) string {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return q + "|" + strconv.Itoa(radius)
}

type cacheEntry struct {
	expiry time.Time
	result SearchResult
}

// MemoryCache is an in-process TTL cache.
type MemoryCache struct {
	entries map[string]cacheEntry
	now     func() time.Time
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewMemoryCache creates a cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a cached result if it exists and hasn't expired.
func (c *MemoryCache) Get(_ context.Context, key string) (SearchResult, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return SearchResult{}, false
	}
	if c.now().After(entry.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return SearchResult{}, false
	}
	return entry.result, true
}

// Set stores a result.
func (c *MemoryCache) Set(_ context.Context, key string, result SearchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{result: result, expiry: c.now().Add(c.ttl)}
	return nil
}
