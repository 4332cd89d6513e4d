package shortener

import "context"

// Repository is the durable record store. Every method is atomic with respect to the
// single record it touches.
type Repository interface {
	// FindByCode returns ErrNotFound when no record owns the code.
	FindByCode(ctx context.Context, code Code) (*Record, error)
	// FindByLongURL returns the first record stored for the exact long URL, or ErrNotFound.
	FindByLongURL(ctx context.Context, longURL string) (*Record, error)
	// Insert assigns ID and CreatedAt and returns ErrUniqueViolation if the code is taken.
	Insert(ctx context.Context, record *Record) (*Record, error)
	// IncrementHits adds one to the hit counter in a single storage-side operation.
	IncrementHits(ctx context.Context, id int64) (*Record, error)
}
