package middleware

import (
	"sync"
	"time"
)

// cachedResponse is a completed response kept for replay.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
	StoredAt    time.Time
}

// idempotencyCache stores completed responses and tracks keys whose first
// request is still running.
type idempotencyCache struct {
	mu       sync.Mutex
	items    map[string]*cachedResponse
	inFlight map[string]struct{}
	ttl      time.Duration
	now      func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

// newIdempotencyCache creates a cache and starts its cleanup loop.
func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items:    make(map[string]*cachedResponse),
		inFlight: make(map[string]struct{}),
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// begin returns the cached response for key if there is a live one. It
// reports busy when another request holds key; otherwise the caller now
// holds key and must call finish.
func (c *idempotencyCache) begin(key string) (cached *cachedResponse, busy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if resp, ok := c.items[key]; ok {
		if c.now().Sub(resp.StoredAt) <= c.ttl {
			return resp, false
		}
		delete(c.items, key)
	}
	if _, ok := c.inFlight[key]; ok {
		return nil, true
	}
	c.inFlight[key] = struct{}{}
	return nil, false
}

// finish releases key and stores resp when it is non-nil.
func (c *idempotencyCache) finish(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, key)
	if resp != nil {
		resp.StoredAt = c.now()
		c.items[key] = resp
	}
}

// Len returns the number of stored responses.
func (c *idempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stop ends the cleanup loop.
func (c *idempotencyCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *idempotencyCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// cleanup removes expired entries.
func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, resp := range c.items {
		if now.Sub(resp.StoredAt) > c.ttl {
			delete(c.items, key)
		}
	}
}
