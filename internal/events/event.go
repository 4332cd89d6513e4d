// Package events defines the audit events emitted by the API and the sink that
// records them.
package events

import "time"

const (
	TopicLinkCreated  = "link.created"
	TopicLinkResolved = "link.resolved"
)

// LinkCreated is emitted after a successful shorten request, including idempotent
// repeats that returned an existing code.
type LinkCreated struct {
	Code      string     `json:"code"`
	LongURL   string     `json:"longUrl"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ClientIP  string     `json:"clientIp"`
	UserAgent string     `json:"userAgent"`
}

// LinkResolved is emitted after a successful redirect. Source is "cache" or "store";
// only store resolutions counted towards the record's hits.
type LinkResolved struct {
	Code       string    `json:"code"`
	Source     string    `json:"source"`
	ResolvedAt time.Time `json:"resolvedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}
