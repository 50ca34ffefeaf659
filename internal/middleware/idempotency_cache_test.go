package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_BeginFinish(t *testing.T) {
	cache := newIdempotencyCache(time.Minute)

	cached, busy := cache.Begin("k")
	assert.Nil(t, cached)
	assert.False(t, busy)

	cached, busy = cache.Begin("k")
	assert.Nil(t, cached)
	assert.True(t, busy, "second claim while the first is running")

	cache.Finish("k", &cachedResponse{StatusCode: 201, Body: []byte("ok")})

	cached, busy = cache.Begin("k")
	require.NotNil(t, cached)
	assert.False(t, busy)
	assert.Equal(t, 201, cached.StatusCode)
}

func TestIdempotencyCache_FailedAttemptReleasesKey(t *testing.T) {
	cache := newIdempotencyCache(time.Minute)

	_, _ = cache.Begin("k")
	cache.Finish("k", nil)

	cached, busy := cache.Begin("k")
	assert.Nil(t, cached)
	assert.False(t, busy)
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	now := time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)
	cache := newIdempotencyCache(time.Minute)
	cache.now = func() time.Time { return now }

	_, _ = cache.Begin("k")
	cache.Finish("k", &cachedResponse{StatusCode: 200})

	_, ok := cache.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("k")
	assert.False(t, ok)

	cache.cleanup()
	assert.Zero(t, cache.len())
}

func TestIdempotencyCache_RunStopsWithContext(t *testing.T) {
	cache := newIdempotencyCache(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		cache.Run(ctx, 10*time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
