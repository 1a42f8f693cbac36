//go:build !integration

package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdempotencyCache(t *testing.T, ttl time.Duration) (*idempotencyCache, *time.Time) {
	t.Helper()
	c := newIdempotencyCache(ttl)
	t.Cleanup(c.Stop)
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestIdempotencyCache_BeginFinish(t *testing.T) {
	c, _ := newTestIdempotencyCache(t, time.Minute)

	cached, busy := c.begin("k")
	require.Nil(t, cached)
	require.False(t, busy)

	_, busy = c.begin("k")
	assert.True(t, busy, "second caller waits for the first")

	c.finish("k", &cachedResponse{StatusCode: 201, Body: []byte("receipt")})

	cached, busy = c.begin("k")
	require.NotNil(t, cached)
	assert.False(t, busy)
	assert.Equal(t, 201, cached.StatusCode)
	assert.Equal(t, "receipt", string(cached.Body))
}

func TestIdempotencyCache_FailedAttemptReleasesKey(t *testing.T) {
	c, _ := newTestIdempotencyCache(t, time.Minute)

	_, _ = c.begin("k")
	c.finish("k", nil)

	cached, busy := c.begin("k")
	assert.Nil(t, cached)
	assert.False(t, busy)
	assert.Equal(t, 0, c.Len())
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	c, now := newTestIdempotencyCache(t, time.Minute)

	_, _ = c.begin("a")
	c.finish("a", &cachedResponse{StatusCode: 200})
	_, _ = c.begin("b")
	c.finish("b", &cachedResponse{StatusCode: 200})

	*now = now.Add(2 * time.Minute)

	cached, busy := c.begin("a")
	assert.Nil(t, cached, "expired entries are not replayed")
	assert.False(t, busy)
	c.finish("a", nil)

	c.cleanup()
	assert.Equal(t, 0, c.Len())
}

func TestIdempotencyCache_StopTwice(t *testing.T) {
	c := newIdempotencyCache(time.Minute)
	c.Stop()
	assert.NotPanics(t, c.Stop)
}
