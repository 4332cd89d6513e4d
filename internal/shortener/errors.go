package shortener

import "errors"

var (
	// ErrInvalidInput is returned when a long URL is not a well-formed absolute URL.
	ErrInvalidInput = errors.New("invalid url")
	// ErrNotFound is returned when a code is absent or its record has expired.
	ErrNotFound = errors.New("short url not found")
	// ErrUniqueViolation is returned by Repository.Insert when the code is taken.
	ErrUniqueViolation = errors.New("short code already exists")
	// ErrCacheMiss is returned by Cache.Get when the key is absent.
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheUnavailable wraps any transport fault of the cache layer.
	ErrCacheUnavailable = errors.New("cache unavailable")
	// ErrCollisionExhausted is returned when no free code is found within the probe cap.
	ErrCollisionExhausted = errors.New("short code collisions exhausted")
)
