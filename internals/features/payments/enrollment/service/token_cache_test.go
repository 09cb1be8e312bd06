package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCacheReusesUntilNearExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	cache := NewTokenCache(func(context.Context) (Token, error) {
		calls++
		return Token{AccessToken: "t", ExpiresAt: now.Add(10 * time.Minute)}, nil
	}, 0)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := cache.Get(ctx)
	require.NoError(t, err)
	_, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// inside the one-minute skew window the token is treated as stale
	now = now.Add(9*time.Minute + 30*time.Second)
	_, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTokenCacheDefaultTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	cache := NewTokenCache(func(context.Context) (Token, error) {
		calls++
		return Token{AccessToken: "t"}, nil
	}, 5*time.Minute)
	cache.now = func() time.Time { return now }

	_, _ = cache.Get(context.Background())
	now = now.Add(3 * time.Minute)
	_, _ = cache.Get(context.Background())
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, _ = cache.Get(context.Background())
	assert.Equal(t, 2, calls)
}

func TestTokenCacheErrorNotCached(t *testing.T) {
	calls := 0
	cache := NewTokenCache(func(context.Context) (Token, error) {
		calls++
		if calls == 1 {
			return Token{}, errBoom
		}
		return Token{AccessToken: "ok"}, nil
	}, 0)

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, errBoom)

	tok, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", tok)
}

func TestTokenCacheInvalidate(t *testing.T) {
	calls := 0
	cache := NewTokenCache(func(context.Context) (Token, error) {
		calls++
		return Token{AccessToken: "t"}, nil
	}, time.Hour)

	_, _ = cache.Get(context.Background())
	cache.Invalidate()
	_, _ = cache.Get(context.Background())
	assert.Equal(t, 2, calls)
}

func TestTokenCacheConcurrentSingleFetch(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	cache := NewTokenCache(func(context.Context) (Token, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		return Token{AccessToken: "t"}, nil
	}, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := cache.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "t", tok)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}

func TestTokenCacheShortTTLStillCaches(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	cache := NewTokenCache(func(context.Context) (Token, error) {
		calls++
		return Token{AccessToken: "t"}, nil
	}, 30*time.Second)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = cache.Get(ctx)
	now = now.Add(10 * time.Second)
	_, _ = cache.Get(ctx)
	now = now.Add(10 * time.Second)
	_, _ = cache.Get(ctx)
	assert.Equal(t, 1, calls)

	// skew for a 30s token is 7.5s, so 23s in it refreshes
	now = now.Add(3 * time.Second)
	_, _ = cache.Get(ctx)
	assert.Equal(t, 2, calls)
}

func TestTokenCacheGatewayShortExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	cache := NewTokenCache(func(context.Context) (Token, error) {
		calls++
		return Token{AccessToken: "t", ExpiresAt: now.Add(40 * time.Second)}, nil
	}, 0)
	cache.now = func() time.Time { return now }

	_, _ = cache.Get(context.Background())
	now = now.Add(20 * time.Second)
	_, _ = cache.Get(context.Background())
	assert.Equal(t, 1, calls)
}
