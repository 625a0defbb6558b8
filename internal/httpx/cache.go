package httpx

import (
	"sync"
	"time"
)

// ResponseCache is a TTL cache of response bodies keyed by URL. Run-local:
// construct one per run and drop it, so repeated queries against the same
// board within a run hit the network once.
type ResponseCache struct {
	mu  sync.RWMutex
	m   map[string]cacheEntry
	ttl time.Duration
}

type cacheEntry struct {
	body    string
	expires time.Time
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		m:   make(map[string]cacheEntry),
		ttl: ttl,
	}
}

func (c *ResponseCache) Get(url string) (string, bool) {
	c.mu.RLock()
	e, ok := c.m[url]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return "", false
	}
	return e.body, true
}

func (c *ResponseCache) Put(url, body string) {
	c.mu.Lock()
	c.m[url] = cacheEntry{body: body, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
