package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryCache is an in-process shortener.Cache used when no Redis is configured.
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates an in-process cache that sweeps expired entries every cleanup.
func NewMemoryCache(cleanup time.Duration) *MemoryCache {
	return &MemoryCache{items: gocache.New(shortener.DefaultCacheTTL, cleanup)}
}

func (m *MemoryCache) Get(_ context.Context, code shortener.Code) (string, error) {
	v, ok := m.items.Get(string(code))
	if !ok {
		return "", shortener.ErrCacheMiss
	}

	longURL, ok := v.(string)
	if !ok {
		m.items.Delete(string(code))

		return "", shortener.ErrCacheMiss
	}

	return longURL, nil
}

func (m *MemoryCache) Set(_ context.Context, code shortener.Code, longURL string, ttl time.Duration) error {
	m.items.Set(string(code), longURL, ttl)

	return nil
}

// Flush drops every entry.
func (m *MemoryCache) Flush() {
	m.items.Flush()
}

// Compile-time check.
var _ shortener.Cache = (*MemoryCache)(nil)
