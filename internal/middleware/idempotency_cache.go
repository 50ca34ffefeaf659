package middleware

import (
	"context"
	"sync"
	"time"
)

// idempotencyCache stores replayable responses and tracks keys still being processed.
type idempotencyCache struct {
	mu       sync.Mutex
	items    map[string]*cachedResponse
	inFlight map[string]struct{}
	ttl      time.Duration
	now      func() time.Time
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	return &idempotencyCache{
		items:    make(map[string]*cachedResponse),
		inFlight: make(map[string]struct{}),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get retrieves a cached response that has not expired.
func (c *idempotencyCache) Get(key string) (*cachedResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, ok := c.items[key]
	if !ok || c.now().Sub(resp.Timestamp) > c.ttl {
		return nil, false
	}
	return resp, true
}

// Begin claims key for processing. It returns the cached response when there is one,
// and busy=true when another request holds the key.
func (c *idempotencyCache) Begin(key string) (cached *cachedResponse, busy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if resp, ok := c.items[key]; ok && c.now().Sub(resp.Timestamp) <= c.ttl {
		return resp, false
	}
	if _, ok := c.inFlight[key]; ok {
		return nil, true
	}
	c.inFlight[key] = struct{}{}
	return nil, false
}

// Finish releases key and stores resp when it is not nil.
func (c *idempotencyCache) Finish(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, key)
	if resp != nil {
		resp.Timestamp = c.now()
		c.items[key] = resp
	}
}

// Run removes expired entries every interval until ctx is done.
func (c *idempotencyCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, resp := range c.items {
		if now.Sub(resp.Timestamp) > c.ttl {
			delete(c.items, key)
		}
	}
}

func (c *idempotencyCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
