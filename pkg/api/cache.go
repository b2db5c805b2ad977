package api

import (
	"strings"
	"sync"
	"time"
)

// cacheEntry keeps the last ETag and body seen for one request identity.
type cacheEntry struct {
	etag string
	body []byte
	at   time.Time
}

// responseCache backs conditional GETs. It is advisory only: no caller may
// depend on an entry being present, and every mutating request must
// invalidate the keys it stales.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newResponseCache() *responseCache {
	return &responseCache{entries: make(map[string]cacheEntry)}
}

func (c *responseCache) get(key string) (cacheEntry, bool) {
	if key == "" {
		return cacheEntry{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *responseCache) put(key, etag string, body []byte) {
	if key == "" {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{etag: etag, body: body, at: time.Now()}
	c.mu.Unlock()
}

func (c *responseCache) invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *responseCache) invalidatePrefix(prefix string) {
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

func (c *responseCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
