package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CacheProvider is a decorator that serves repeated identical requests
// from memory. Only successful responses are cached.
type CacheProvider struct {
	inner Provider
	cache *gocache.Cache
}

// WithCache wraps a Provider with an in-memory response cache. A
// non-positive ttl disables caching and returns p unchanged.
func WithCache(p Provider, ttl time.Duration) Provider {
	if ttl <= 0 {
		return p
	}
	return &CacheProvider{
		inner: p,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CacheProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	key := c.key(req)
	if v, ok := c.cache.Get(key); ok {
		resp := *v.(*Response)
		return &resp, nil
	}

	resp, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	stored := *resp
	c.cache.SetDefault(key, &stored)
	return resp, nil
}

func (c *CacheProvider) ModelID() string {
	return c.inner.ModelID()
}

// Len returns the number of cached responses.
func (c *CacheProvider) Len() int {
	return c.cache.ItemCount()
}

// key digests everything that influences the completion.
func (c *CacheProvider) key(req Request) string {
	b, _ := json.Marshal(struct {
		Model string
		Request
	}{c.inner.ModelID(), req})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
