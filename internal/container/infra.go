package container

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/store/migrations"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// RedisConn holds the shared Redis client. Client is nil when Redis is disabled.
type RedisConn struct {
	Client redis.UniversalClient
}

// Shutdown closes the client.
func (r *RedisConn) Shutdown() error {
	if r.Client == nil {
		return nil
	}

	return r.Client.Close()
}

// PostgresConn holds the shared pool. Pool is nil when records are kept in memory.
type PostgresConn struct {
	Pool *pgxpool.Pool
}

// Shutdown closes the pool.
func (p *PostgresConn) Shutdown() error {
	if p.Pool != nil {
		p.Pool.Close()
	}

	return nil
}

// RedisPackage provides the Redis connection. The client is created lazily by
// go-redis, so an unreachable server does not prevent start-up. Commands are not
// retried; the cache and publisher breakers decide when to try again.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*RedisConn, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.RedisAddr == "" {
			return &RedisConn{}, nil
		}

		client := redis.NewClient(&redis.Options{
			Addr:         opts.RedisAddr,
			DialTimeout:  2 * time.Second,
			MaxRetries:   -1,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})

		return &RedisConn{Client: client}, nil
	})
}

// PostgresPackage provides the PostgreSQL pool and applies migrations when asked.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*PostgresConn, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.DatabaseURL == "" {
			logger.Warn("no database url configured, records are kept in memory")

			return &PostgresConn{}, nil
		}

		if opts.Migrate {
			if err := migrations.Up(opts.DatabaseURL, logger); err != nil {
				return nil, err
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pool, err := NewPostgresPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}

		return &PostgresConn{Pool: pool}, nil
	})
}

// NewPostgresPool creates a configured connection pool for PostgreSQL.
func NewPostgresPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, err
	}

	return pool, nil
}
