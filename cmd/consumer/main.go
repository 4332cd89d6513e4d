package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/container"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	opts := &container.Options{
		RedisAddr: getEnv("SERVICE_REDIS_ADDR", "localhost:6379"),
		LogFormat: getEnv("SERVICE_LOG_FORMAT", "console"),
		LogLevel:  getEnv("SERVICE_LOG_LEVEL", "info"),
	}

	if opts.RedisAddr == "" {
		fmt.Fprintln(os.Stderr, "consumer requires SERVICE_REDIS_ADDR")
		os.Exit(1)
	}

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.BrokerPackage(injector)
	container.ConsumerGroupPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)
	group := do.MustInvoke[*messaging.ConsumerGroup](injector)

	ctx, cancel := context.WithCancel(context.Background())

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumer group", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return defaultValue
}
