package shortener

import "time"

// IsExpired reports whether the record's expiry lies strictly before now.
// A record without an expiry never expires.
func IsExpired(record *Record, now time.Time) bool {
	return record.ExpiresAt != nil && record.ExpiresAt.Before(now)
}
