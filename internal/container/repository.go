package container

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/health"
	"github.com/serroba/shortlink/internal/metrics"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the record store, the cache and the health handler.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		pg := do.MustInvoke[*PostgresConn](i)
		if pg.Pool == nil {
			return store.NewMemoryStore(), nil
		}

		return store.NewPostgresStore(pg.Pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.Cache, error) {
		opts := do.MustInvoke[*Options](i)
		conn := do.MustInvoke[*RedisConn](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if conn.Client == nil {
			return store.NewMemoryCache(time.Minute), nil
		}

		return store.NewBreakerCache(store.NewRedisCache(conn.Client), store.BreakerSettings{
			OpenTimeout: time.Duration(opts.BreakerTimeoutSeconds) * time.Second,
		}, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*health.Handler, error) {
		repo := do.MustInvoke[shortener.Repository](i)
		conn := do.MustInvoke[*RedisConn](i)

		storeChecker, _ := repo.(health.Checker)

		var cacheChecker health.Checker
		if conn.Client != nil {
			cacheChecker = health.NewRedisChecker(conn.Client)
		}

		return health.NewHandler(storeChecker, cacheChecker), nil
	})
}

// ShortenerPackage provides the code generator, the resolver and their metrics.
func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*prometheus.Registry, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		return reg, nil
	})

	do.Provide(injector, func(i *do.Injector) (*metrics.Recorder, error) {
		return metrics.NewRecorder(do.MustInvoke[*prometheus.Registry](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Generator, error) {
		opts := do.MustInvoke[*Options](i)

		return shortener.NewGenerator(
			do.MustInvoke[shortener.Repository](i),
			shortener.WithMaxProbes(opts.MaxProbes),
			shortener.WithDefaultExpiry(time.Duration(opts.DefaultExpirySeconds)*time.Second),
			shortener.WithGeneratorObserver(do.MustInvoke[*metrics.Recorder](i)),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Resolver, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		cache := shortener.NewTolerantCache(do.MustInvoke[shortener.Cache](i), logger)

		return shortener.NewResolver(
			do.MustInvoke[shortener.Repository](i),
			cache,
			shortener.WithCacheTTL(time.Duration(opts.CacheTTLSeconds)*time.Second),
			shortener.WithResolverObserver(do.MustInvoke[*metrics.Recorder](i)),
		), nil
	})
}
