package container_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/container"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func localOptions() *container.Options {
	return &container.Options{
		Port:            9999,
		CacheTTLSeconds: 60,
		MaxProbes:       4,
		APIKey:          "local-key",
		LogFormat:       "json",
		LogLevel:        "error",
	}
}

func newLocalInjector(t *testing.T, opts *container.Options) *do.Injector {
	t.Helper()

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.RepositoryPackage(injector)
	container.ShortenerPackage(injector)
	container.BrokerPackage(injector)
	container.PublisherGroupPackage(injector)
	container.ConsumerGroupPackage(injector)
	container.HTTPPackage(injector)

	t.Cleanup(func() { _ = injector.Shutdown() })

	return injector
}

func serve(router http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestNewLogger(t *testing.T) {
	t.Run("builds console and json loggers", func(t *testing.T) {
		for _, format := range []string{"console", "json"} {
			logger, err := container.NewLogger(format, "debug")

			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(zap.DebugLevel))
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := container.NewLogger("json", "loud")

		assert.Error(t, err)
	})
}

func TestLocalWiring(t *testing.T) {
	injector := newLocalInjector(t, localOptions())

	router := do.MustInvoke[*chi.Mux](injector)
	_ = do.MustInvoke[huma.API](injector)

	broker := do.MustInvoke[*container.Broker](injector)
	require.True(t, broker.Local, "no redis address means in-process broker")

	t.Run("serves the shortener", func(t *testing.T) {
		rec := serve(router, http.MethodPost, "/shorten", `{"longUrl":"https://example.com/wired"}`, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created struct {
			ShortCode string `json:"shortCode"`
			ShortURL  string `json:"shortUrl"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "http://localhost:9999/"+created.ShortCode, created.ShortURL)

		rec = serve(router, http.MethodGet, "/"+created.ShortCode, "", nil)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)

		rec = serve(router, http.MethodGet, "/analytics/"+created.ShortCode, "", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = serve(router, http.MethodGet, "/analytics/"+created.ShortCode, "",
			http.Header{middleware.HeaderAPIKey: {"local-key"}})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("reports health with cache in process", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Status string `json:"status"`
			Cache  string `json:"cache"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "disabled", body.Cache)
	})

	t.Run("exposes metrics", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/metrics", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "shortlink_created_total 1")
		assert.Contains(t, rec.Body.String(), `shortlink_resolutions_total{path="store"} 1`)
	})
}

func TestLocalBrokerDeliversEvents(t *testing.T) {
	injector := newLocalInjector(t, localOptions())

	group := do.MustInvoke[*messaging.ConsumerGroup](injector)
	require.NoError(t, group.Start(context.Background()))

	broker := do.MustInvoke[*container.Broker](injector)
	msgs, err := broker.Subscriber.Subscribe(context.Background(), events.TopicLinkCreated)
	require.NoError(t, err)

	publish := do.MustInvoke[messaging.Publish[events.LinkCreated]](injector)
	require.NoError(t, publish(context.Background(), &events.LinkCreated{Code: "abc1234"}))

	select {
	case msg := <-msgs:
		msg.Ack()
		assert.Contains(t, string(msg.Payload), `"code":"abc1234"`)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnreachableRedisKeepsRequestsFast(t *testing.T) {
	opts := localOptions()
	opts.RedisAddr = "127.0.0.1:1"

	injector := newLocalInjector(t, opts)
	router := do.MustInvoke[*chi.Mux](injector)
	_ = do.MustInvoke[huma.API](injector)

	require.False(t, do.MustInvoke[*container.Broker](injector).Local)

	var code string

	// Trip both breakers.
	for i := range 6 {
		rec := serve(router, http.MethodPost, "/shorten", fmt.Sprintf(`{"longUrl":"https://example.com/warm/%d"}`, i), nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created struct {
			ShortCode string `json:"shortCode"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		code = created.ShortCode

		rec = serve(router, http.MethodGet, "/"+code, "", nil)
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	}

	for i := range 8 {
		start := time.Now()
		rec := serve(router, http.MethodPost, "/shorten", fmt.Sprintf(`{"longUrl":"https://example.com/down/%d"}`, i), nil)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Less(t, time.Since(start), 50*time.Millisecond, "create must not wait on redis")

		start = time.Now()
		rec = serve(router, http.MethodGet, "/"+code, "", nil)

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Less(t, time.Since(start), 50*time.Millisecond, "redirect must not wait on redis")
	}

	rec := serve(router, http.MethodGet, "/health", "", nil)
	assert.Contains(t, rec.Body.String(), `"degraded"`)
}
