package shortener

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultCacheTTL is how long a resolved code stays in the cache layer.
const DefaultCacheTTL = 24 * time.Hour

// Cache is a volatile code -> long URL store with per-entry TTL.
type Cache interface {
	// Get returns ErrCacheMiss when absent and an ErrCacheUnavailable-wrapped error on faults.
	Get(ctx context.Context, code Code) (string, error)
	Set(ctx context.Context, code Code, longURL string, ttl time.Duration) error
}

// TolerantCache absorbs every cache fault: failed reads are misses and failed
// writes are no-ops. Nothing it does can fail a request.
type TolerantCache struct {
	cache  Cache
	logger *zap.Logger
}

// NewTolerantCache wraps cache. A nil cache behaves as permanently empty.
func NewTolerantCache(cache Cache, logger *zap.Logger) *TolerantCache {
	return &TolerantCache{cache: cache, logger: logger}
}

// Lookup returns the cached long URL and whether it was found.
func (c *TolerantCache) Lookup(ctx context.Context, code Code) (string, bool) {
	if c.cache == nil {
		return "", false
	}

	longURL, err := c.cache.Get(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn("cache read failed, treating as miss",
				zap.String("code", string(code)),
				zap.Error(err),
			)
		}

		return "", false
	}

	return longURL, longURL != ""
}

// Populate writes the mapping on a best-effort basis.
func (c *TolerantCache) Populate(ctx context.Context, code Code, longURL string, ttl time.Duration) {
	if c.cache == nil {
		return
	}

	if err := c.cache.Set(ctx, code, longURL, ttl); err != nil {
		c.logger.Warn("cache write failed, skipping",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}
}
