package container

import (
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jaevor/go-nanoid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/health"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

const generatedKeyLength = 32

// HTTPPackage provides the router and the Huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Use(chimw.RequestID, chimw.Recoverer)

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		key, err := apiKey(opts.APIKey, logger)
		if err != nil {
			return nil, err
		}

		config := huma.DefaultConfig("URL Shortener", "1.0.0")
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			handlers.SecurityAPIKey: {
				Type: "apiKey",
				In:   "header",
				Name: middleware.HeaderAPIKey,
			},
		}

		api := humachi.New(router, config)
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.APIKey(api, handlers.SecurityAPIKey, key, logger),
		)

		urlHandler := handlers.NewURLHandler(
			do.MustInvoke[*shortener.Generator](i),
			do.MustInvoke[*shortener.Resolver](i),
			baseURL(opts),
			do.MustInvoke[messaging.Publish[events.LinkCreated]](i),
			do.MustInvoke[messaging.Publish[events.LinkResolved]](i),
			logger,
		)

		router.Handle("/metrics", promhttp.HandlerFor(do.MustInvoke[*prometheus.Registry](i), promhttp.HandlerOpts{}))
		health.RegisterRoutes(api, do.MustInvoke[*health.Handler](i))
		handlers.RegisterRoutes(api, urlHandler)

		return api, nil
	})
}

func baseURL(opts *Options) string {
	if opts.BaseURL != "" {
		return strings.TrimRight(opts.BaseURL, "/")
	}

	return fmt.Sprintf("http://localhost:%d", opts.Port)
}

// apiKey returns configured, or a freshly generated key that is logged once.
func apiKey(configured string, logger *zap.Logger) (string, error) {
	if configured != "" {
		return configured, nil
	}

	generate, err := nanoid.Standard(generatedKeyLength)
	if err != nil {
		return "", fmt.Errorf("create api key generator: %w", err)
	}

	key := generate()
	logger.Warn("no api key configured, generated one for this process", zap.String("apiKey", key))

	return key, nil
}
