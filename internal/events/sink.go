package events

import (
	"context"

	"go.uber.org/zap"
)

// AuditLog writes every received event to a structured log.
type AuditLog struct {
	logger *zap.Logger
}

// NewAuditLog creates a sink writing to logger.
func NewAuditLog(logger *zap.Logger) *AuditLog {
	return &AuditLog{logger: logger.Named("audit")}
}

func (a *AuditLog) LinkCreated(_ context.Context, event *LinkCreated) error {
	fields := []zap.Field{
		zap.String("code", event.Code),
		zap.String("longUrl", event.LongURL),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("clientIp", event.ClientIP),
		zap.String("userAgent", event.UserAgent),
	}
	if event.ExpiresAt != nil {
		fields = append(fields, zap.Time("expiresAt", *event.ExpiresAt))
	}

	a.logger.Info("link created", fields...)

	return nil
}

func (a *AuditLog) LinkResolved(_ context.Context, event *LinkResolved) error {
	a.logger.Info("link resolved",
		zap.String("code", event.Code),
		zap.String("source", event.Source),
		zap.Time("resolvedAt", event.ResolvedAt),
		zap.String("clientIp", event.ClientIP),
		zap.String("referrer", event.Referrer),
	)

	return nil
}
