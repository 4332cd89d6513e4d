package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening operations.
type URLHandler struct {
	generator           *shortener.Generator
	resolver            *shortener.Resolver
	baseURL             string
	publishLinkCreated  messaging.Publish[events.LinkCreated]
	publishLinkResolved messaging.Publish[events.LinkResolved]
	logger              *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	generator *shortener.Generator,
	resolver *shortener.Resolver,
	baseURL string,
	publishLinkCreated messaging.Publish[events.LinkCreated],
	publishLinkResolved messaging.Publish[events.LinkResolved],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		generator:           generator,
		resolver:            resolver,
		baseURL:             baseURL,
		publishLinkCreated:  publishLinkCreated,
		publishLinkResolved: publishLinkResolved,
		logger:              logger,
	}
}

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata for audit events.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	record, err := h.generator.Shorten(ctx, req.Body.LongURL, req.Body.ExpiresAt)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidInput) {
			return nil, huma.Error400BadRequest("longUrl must be a well-formed absolute http(s) URL", err)
		}

		h.logger.Error("failed to shorten url", zap.String("longUrl", req.Body.LongURL), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save url")
	}

	meta := RequestMetaFromContext(ctx)
	event := &events.LinkCreated{
		Code:      string(record.Code),
		LongURL:   record.LongURL,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishLinkCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	fullShortURL := fmt.Sprintf("%s/%s", h.baseURL, record.Code)

	resp := &CreateShortURLResponse{}
	resp.Location = fullShortURL
	resp.Body.ShortCode = string(record.Code)
	resp.Body.ShortURL = fullShortURL
	resp.Body.ExpiresAt = record.ExpiresAt

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	resolution, err := h.resolver.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to resolve code", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	meta := RequestMetaFromContext(ctx)
	event := &events.LinkResolved{
		Code:       req.Code,
		Source:     string(resolution.Path),
		ResolvedAt: time.Now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err = h.publishLinkResolved(ctx, event); err != nil {
		h.logger.Error("failed to publish link resolved event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusTemporaryRedirect,
		Location: resolution.LongURL,
	}, nil
}

func (h *URLHandler) GetAnalytics(ctx context.Context, req *AnalyticsRequest) (*AnalyticsResponse, error) {
	record, err := h.resolver.Stats(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to load stats", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	resp := &AnalyticsResponse{}
	resp.Body.LongURL = record.LongURL
	resp.Body.ShortCode = string(record.Code)
	resp.Body.Hits = record.Hits
	resp.Body.ExpiresAt = record.ExpiresAt

	return resp, nil
}
