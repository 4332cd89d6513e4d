package shortener

import "time"

// CodeLength is the number of hex characters in a short code.
const CodeLength = 7

// Code represents a short URL code.
type Code string

// Record is a persisted short link.
type Record struct {
	ID        int64
	LongURL   string
	Code      Code
	Hits      int64
	ExpiresAt *time.Time // nil never expires
	CreatedAt time.Time
}
