package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerCache guards a shortener.Cache with a circuit breaker. While the breaker is
// open every call fails fast with shortener.ErrCacheUnavailable.
type BreakerCache struct {
	cache   shortener.Cache
	breaker *gobreaker.CircuitBreaker
}

// BreakerSettings tunes the breaker.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// NewBreakerCache wraps cache.
func NewBreakerCache(cache shortener.Cache, settings BreakerSettings, logger *zap.Logger) *BreakerCache {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 5
	}

	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cache",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		// A miss is a healthy answer.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, shortener.ErrCacheMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerCache{cache: cache, breaker: breaker}
}

func (b *BreakerCache) Get(ctx context.Context, code shortener.Code) (string, error) {
	v, err := b.breaker.Execute(func() (interface{}, error) {
		return b.cache.Get(ctx, code)
	})
	if err != nil {
		return "", breakerErr(err)
	}

	return v.(string), nil
}

func (b *BreakerCache) Set(ctx context.Context, code shortener.Code, longURL string, ttl time.Duration) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.cache.Set(ctx, code, longURL, ttl)
	})

	return breakerErr(err)
}

// State reports the breaker state.
func (b *BreakerCache) State() gobreaker.State {
	return b.breaker.State()
}

func breakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", shortener.ErrCacheUnavailable, err)
	}

	return err
}

// Compile-time check.
var _ shortener.Cache = (*BreakerCache)(nil)
