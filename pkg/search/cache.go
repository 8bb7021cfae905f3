package search

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

// resultCache holds merged, sorted result lists for a short TTL so that
// repeated identical queries (typing pauses, back navigation) skip the
// collection fetches entirely. Eviction is lazy on read; serve additionally
// runs a periodic sweep so idle entries don't accumulate.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	results   []core.SearchResult
	expiresAt time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *resultCache) get(key string) ([]core.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.results, true
}

func (c *resultCache) set(key string, results []core.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		results:   results,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// sweep drops every expired entry.
func (c *resultCache) sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *resultCache) setTTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
}

func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey builds the composite key for a search invocation. The type filter
// is sorted so that the caller's filter order never produces distinct keys;
// the query string is used raw (matching lowercases separately).
func cacheKey(query string, types []core.EntityType, limit int) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	sort.Strings(names)
	return query + "|" + strings.Join(names, ",") + "|" + strconv.Itoa(limit)
}
