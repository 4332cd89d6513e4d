package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisCache is a Redis implementation of shortener.Cache. Keys are bare short codes
// and values are long URL strings.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, code shortener.Code) (string, error) {
	longURL, err := r.client.Get(ctx, string(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrCacheMiss
		}

		return "", fmt.Errorf("%w: %w", shortener.ErrCacheUnavailable, err)
	}

	return longURL, nil
}

func (r *RedisCache) Set(ctx context.Context, code shortener.Code, longURL string, ttl time.Duration) error {
	if err := r.client.Set(ctx, string(code), longURL, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", shortener.ErrCacheUnavailable, err)
	}

	return nil
}

// Compile-time check.
var _ shortener.Cache = (*RedisCache)(nil)
