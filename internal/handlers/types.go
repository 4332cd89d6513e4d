package handlers

import "time"

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		LongURL   string     `doc:"The absolute URL to shorten"                 example:"https://example.com/very/long/path" json:"longUrl" required:"false"`
		ExpiresAt *time.Time `doc:"When the short code stops resolving, if ever" json:"expiresAt,omitempty"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Location string `doc:"The short URL location" header:"Location"`
	Body     struct {
		ShortCode string     `doc:"The short code"     example:"abc1234"                       json:"shortCode"`
		ShortURL  string     `doc:"The full short URL" example:"http://localhost:8888/abc1234" json:"shortUrl"`
		ExpiresAt *time.Time `doc:"Record expiry"      json:"expiresAt,omitempty"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc1234" path:"code"`
}

// RedirectResponse redirects the client to the long URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}

// AnalyticsRequest is the request for a short code's stats.
type AnalyticsRequest struct {
	Code string `doc:"The short code" example:"abc1234" path:"code"`
}

// AnalyticsResponse carries the stored record behind a short code.
type AnalyticsResponse struct {
	Body struct {
		LongURL   string     `doc:"The original URL"                        json:"longUrl"`
		ShortCode string     `doc:"The short code"                          json:"shortCode"`
		Hits      int64      `doc:"Redirects served through the store path" json:"hits"`
		ExpiresAt *time.Time `doc:"Record expiry"                           json:"expiresAt,omitempty"`
	}
}
