package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultMaxProbes caps collision probing. Reaching it means the digest space is
// effectively exhausted for this input.
const DefaultMaxProbes = 16

// CodeFunc derives a candidate code for a normalized URL at a probe level.
type CodeFunc func(normalizedURL string, level int) Code

// Generator derives content-addressed short codes and persists new records.
type Generator struct {
	store         Repository
	codeFor       CodeFunc
	maxProbes     int
	defaultExpiry time.Duration
	now           func() time.Time
	observer      Observer
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithCodeFunc replaces CandidateCode, mostly to force collisions in tests.
func WithCodeFunc(fn CodeFunc) GeneratorOption {
	return func(g *Generator) { g.codeFor = fn }
}

// WithMaxProbes sets the probe cap.
func WithMaxProbes(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxProbes = n
		}
	}
}

// WithDefaultExpiry applies now+d to records created without an explicit expiry.
// Zero leaves them without expiry.
func WithDefaultExpiry(d time.Duration) GeneratorOption {
	return func(g *Generator) { g.defaultExpiry = d }
}

// WithGeneratorClock sets the time source.
func WithGeneratorClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// WithGeneratorObserver registers an observer for created records.
func WithGeneratorObserver(o Observer) GeneratorOption {
	return func(g *Generator) { g.observer = o }
}

// NewGenerator creates a generator backed by store.
func NewGenerator(store Repository, opts ...GeneratorOption) *Generator {
	g := &Generator{
		store:     store,
		codeFor:   CandidateCode,
		maxProbes: DefaultMaxProbes,
		now:       time.Now,
		observer:  nopObserver{},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Shorten returns the record for rawURL, creating it if this exact normalized URL has
// never been stored. expiresAt applies only when a new record is created.
func (g *Generator) Shorten(ctx context.Context, rawURL string, expiresAt *time.Time) (*Record, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	existing, err := g.store.FindByLongURL(ctx, normalized)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find by long url: %w", err)
	}

	if expiresAt == nil && g.defaultExpiry > 0 {
		t := g.now().Add(g.defaultExpiry)
		expiresAt = &t
	}

	for level := 0; level < g.maxProbes; level++ {
		code := g.codeFor(normalized, level)

		owner, err := g.store.FindByCode(ctx, code)
		if err == nil {
			if owner.LongURL == normalized {
				return owner, nil
			}

			continue
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("find by code: %w", err)
		}

		record, err := g.store.Insert(ctx, &Record{
			LongURL:   normalized,
			Code:      code,
			Hits:      0,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			g.observer.Created(level + 1)

			return record, nil
		}

		if !errors.Is(err, ErrUniqueViolation) {
			return nil, fmt.Errorf("insert: %w", err)
		}

		// Lost a race for this code. If the winner stored the same URL, it is ours too.
		winner, err := g.store.FindByLongURL(ctx, normalized)
		if err == nil {
			return winner, nil
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("re-read after conflict: %w", err)
		}
	}

	return nil, fmt.Errorf("%w after %d probes", ErrCollisionExhausted, g.maxProbes)
}
