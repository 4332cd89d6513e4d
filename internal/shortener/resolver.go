package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Resolution is the outcome of resolving a short code.
type Resolution struct {
	LongURL string
	Path    Path
}

// Resolver implements the cache-aside redirect path.
//
// Cache hits are served without touching the store, so they neither increment the hit
// counter nor re-check expiry. Cache entries live for cacheTTL regardless of the
// record's own expiry.
type Resolver struct {
	store    Repository
	cache    *TolerantCache
	cacheTTL time.Duration
	now      func() time.Time
	observer Observer
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		if ttl > 0 {
			r.cacheTTL = ttl
		}
	}
}

// WithResolverClock sets the time source used for expiry checks.
func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// WithResolverObserver registers an observer for resolution outcomes.
func WithResolverObserver(o Observer) ResolverOption {
	return func(r *Resolver) { r.observer = o }
}

// NewResolver creates a resolver reading through cache into store.
func NewResolver(store Repository, cache *TolerantCache, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:    store,
		cache:    cache,
		cacheTTL: DefaultCacheTTL,
		now:      time.Now,
		observer: nopObserver{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the long URL for code or ErrNotFound when the code is unknown or expired.
func (r *Resolver) Resolve(ctx context.Context, code Code) (*Resolution, error) {
	if longURL, ok := r.cache.Lookup(ctx, code); ok {
		r.observer.Resolved(PathCache)

		return &Resolution{LongURL: longURL, Path: PathCache}, nil
	}

	record, err := r.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.observer.Resolved(PathNotFound)
		}

		return nil, err
	}

	if IsExpired(record, r.now()) {
		r.observer.Resolved(PathExpired)

		return nil, fmt.Errorf("%w: code %s expired", ErrNotFound, code)
	}

	if _, err := r.store.IncrementHits(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("increment hits: %w", err)
	}

	r.cache.Populate(ctx, code, record.LongURL, r.cacheTTL)
	r.observer.Resolved(PathStore)

	return &Resolution{LongURL: record.LongURL, Path: PathStore}, nil
}

// Stats returns the stored record for code including its hit count. It always reads
// the store and returns expired records too.
func (r *Resolver) Stats(ctx context.Context, code Code) (*Record, error) {
	return r.store.FindByCode(ctx, code)
}
