package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// SecurityAPIKey names the API key security scheme guarding analytics.
const SecurityAPIKey = "apiKey"

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short URL",
		Description:   "Returns the short code for a long URL, creating it on first submission.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "get-analytics",
		Method:      http.MethodGet,
		Path:        "/analytics/{code}",
		Summary:     "Get short URL stats",
		Description: "Returns the long URL, hit count and expiry behind a short code.",
		Tags:        []string{"Analytics"},
		Security:    []map[string][]string{{SecurityAPIKey: {}}},
	}, urlHandler.GetAnalytics)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)
}
