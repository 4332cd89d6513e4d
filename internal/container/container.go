package container

import (
	"fmt"

	"github.com/samber/do"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options are read from flags and SERVICE_* environment variables.
type Options struct {
	Port                  int    `default:"8888"           help:"Port to listen on"                                        short:"p"`
	BaseURL               string `default:""               help:"Public base URL for short links (defaults to localhost)"`
	DatabaseURL           string `default:""               help:"PostgreSQL URL; empty keeps records in memory"            short:"d"`
	Migrate               bool   `default:"true"           help:"Apply embedded schema migrations on start"`
	RedisAddr             string `default:"localhost:6379" help:"Redis server address; empty uses an in-process cache"     short:"r"`
	CacheTTLSeconds       int    `default:"86400"          help:"Cache entry TTL in seconds"`
	DefaultExpirySeconds  int    `default:"0"              help:"Expiry applied to links created without one; 0 never"`
	MaxProbes             int    `default:"16"             help:"Maximum candidate codes probed on hash collisions"`
	BreakerTimeoutSeconds int    `default:"10"             help:"Seconds the cache circuit breaker stays open"`
	APIKey                string `default:""               help:"API key for analytics; empty generates one at start"`
	LogFormat             string `default:"console"        help:"Log format: console or json"`
	LogLevel              string `default:"info"           help:"Log level"`
}

// LoggerPackage provides the process logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		return NewLogger(opts.LogFormat, opts.LogLevel)
	})
}

// NewLogger builds a zap logger for the given format and level.
func NewLogger(format, level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}
