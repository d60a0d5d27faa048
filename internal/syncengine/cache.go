package syncengine

import (
	"sync"
	"time"

	"github.com/nguyentranbao-ct/product-dash/internal/models"
	"github.com/nguyentranbao-ct/product-dash/pkg/util"
)

// DefaultCacheTTL matches the dashboard's 5 minute staleness window.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	page     models.ProductPage
	cachedAt time.Time
}

// ResultCache maps canonical query keys to page snapshots with a TTL.
// Expired entries are evicted lazily on read. The cache carries its own lock
// so it may be shared across engines, though the default wiring is one cache
// per engine.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns a deep copy of the cached page for params, if a live entry
// exists. An expired entry is evicted and reported as a miss.
func (c *ResultCache) Get(params models.SearchParams) (*models.ProductPage, bool) {
	key := QueryKey(params)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.cachedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	page, err := util.Clone(entry.page)
	if err != nil {
		return nil, false
	}
	return &page, true
}

// Set stores a deep copy of page under the canonical key for params,
// replacing any existing entry. The pagination snapshot is kept with the
// items so a later hit restores pagination that belongs to the same
// parameters.
func (c *ResultCache) Set(params models.SearchParams, page models.ProductPage) {
	copied, err := util.Clone(page)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[QueryKey(params)] = cacheEntry{
		page:     copied,
		cachedAt: c.now(),
	}
}

// Clear evicts all entries.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len reports the number of stored entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
