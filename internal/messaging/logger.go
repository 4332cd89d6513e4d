package messaging

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// ZapLogger adapts a zap.Logger to watermill.LoggerAdapter.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger creates a watermill logger writing to logger.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger.Named("watermill")}
}

func (l *ZapLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error(msg, append(toZap(fields), zap.Error(err))...)
}

func (l *ZapLogger) Info(msg string, fields watermill.LogFields) {
	l.logger.Info(msg, toZap(fields)...)
}

func (l *ZapLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, toZap(fields)...)
}

// Trace is folded into Debug; zap has no trace level.
func (l *ZapLogger) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, toZap(fields)...)
}

func (l *ZapLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &ZapLogger{logger: l.logger.With(toZap(fields)...)}
}

func toZap(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}

	return out
}

// Compile-time check.
var _ watermill.LoggerAdapter = (*ZapLogger)(nil)
