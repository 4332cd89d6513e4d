package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOutput struct {
	Body string `json:"body"`
}

// serveMeta sends req through the middleware and returns the metadata the handler saw.
func serveMeta(t *testing.T, req *http.Request) handlers.RequestMeta {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))

	metaChan := make(chan handlers.RequestMeta, 1)

	huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		metaChan <- handlers.RequestMetaFromContext(ctx)

		return &testOutput{Body: "ok"}, nil
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	return <-metaChan
}

func TestRequestMeta(t *testing.T) {
	t.Run("extracts user-agent and referrer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("User-Agent", "TestAgent/1.0")
		req.Header.Set("Referer", "https://example.com")

		meta := serveMeta(t, req)

		assert.Equal(t, "TestAgent/1.0", meta.UserAgent)
		assert.Equal(t, "https://example.com", meta.Referrer)
	})

	t.Run("extracts IP from X-Forwarded-For with single IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.1")

		assert.Equal(t, "192.168.1.1", serveMeta(t, req).ClientIP)
	})

	t.Run("extracts first IP from X-Forwarded-For with multiple IPs", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.1, 10.0.0.1, 172.16.0.1")

		assert.Equal(t, "192.168.1.1", serveMeta(t, req).ClientIP)
	})

	t.Run("extracts IP from X-Real-IP when X-Forwarded-For is absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Real-IP", "10.0.0.1")

		assert.Equal(t, "10.0.0.1", serveMeta(t, req).ClientIP)
	})

	t.Run("falls back to remote address when no IP headers present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "203.0.113.7:51234"

		assert.Equal(t, "203.0.113.7", serveMeta(t, req).ClientIP)
	})
}
