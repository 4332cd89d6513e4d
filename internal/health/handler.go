package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.UniversalClient to Checker interface.
type RedisChecker struct {
	client redis.UniversalClient
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client redis.UniversalClient) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	store Checker
	cache Checker
}

// NewHandler creates a new health handler. A nil cache reports as disabled.
func NewHandler(store, cache Checker) *Handler {
	return &Handler{store: store, cache: cache}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status string `json:"status"`
		Store  string `json:"store"`
		Cache  string `json:"cache"`
	}
}

// Check reports "ok" when every dependency answers and "degraded" otherwise. The
// service keeps redirecting with the cache down, so this never fails the request.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Store = probe(ctx, h.store)
	resp.Body.Cache = probe(ctx, h.cache)

	if resp.Body.Store == statusUnhealthy || resp.Body.Cache == statusUnhealthy {
		resp.Body.Status = "degraded"
	}

	return resp, nil
}

func probe(ctx context.Context, c Checker) string {
	if c == nil {
		return statusDisabled
	}

	if err := c.Ping(ctx); err != nil {
		return statusUnhealthy
	}

	return statusHealthy
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
