package service

import (
	"context"
	"sync"
	"time"
)

type Token struct {
	AccessToken string
	ExpiresAt   time.Time // zero when the gateway did not say
}

// TokenCache holds one gateway credential and refetches it once it is stale.
// Concurrent callers wait on the same refresh.
type TokenCache struct {
	mu    sync.Mutex
	token Token
	fetch func(ctx context.Context) (Token, error)

	skew       time.Duration // refresh this long before expiry, at most
	tokenSkew  time.Duration // skew for the held token, capped at a quarter of its lifetime
	defaultTTL time.Duration // used when the token carries no expiry
	now        func() time.Time
}

func NewTokenCache(fetch func(ctx context.Context) (Token, error), defaultTTL time.Duration) *TokenCache {
	if defaultTTL <= 0 {
		defaultTTL = 15 * time.Minute
	}
	return &TokenCache{
		fetch:      fetch,
		skew:       time.Minute,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (c *TokenCache) fresh() bool {
	if c.token.AccessToken == "" {
		return false
	}
	return c.now().Add(c.tokenSkew).Before(c.token.ExpiresAt)
}

// Get returns the cached token or fetches a new one.
func (c *TokenCache) Get(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fresh() {
		return c.token.AccessToken, nil
	}
	tok, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	now := c.now()
	if tok.ExpiresAt.IsZero() {
		tok.ExpiresAt = now.Add(c.defaultTTL)
	}
	c.token = tok
	c.tokenSkew = min(c.skew, max(tok.ExpiresAt.Sub(now)/4, 0))
	return tok.AccessToken, nil
}

// Invalidate drops the cached token, e.g. after the gateway answered 401.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = Token{}
	c.mu.Unlock()
}
