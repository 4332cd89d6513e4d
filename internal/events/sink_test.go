package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuditLog_LinkCreated(t *testing.T) {
	t.Run("logs event with expiry", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		sink := events.NewAuditLog(zap.New(core))
		expires := time.Now().Add(time.Hour)

		err := sink.LinkCreated(context.Background(), &events.LinkCreated{
			Code:      "abc1234",
			LongURL:   "https://example.com/a",
			ExpiresAt: &expires,
			CreatedAt: time.Now(),
		})

		require.NoError(t, err)
		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "abc1234", fields["code"])
		assert.Contains(t, fields, "expiresAt")
	})

	t.Run("omits expiry when absent", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		sink := events.NewAuditLog(zap.New(core))

		err := sink.LinkCreated(context.Background(), &events.LinkCreated{Code: "abc1234"})

		require.NoError(t, err)
		assert.NotContains(t, logs.All()[0].ContextMap(), "expiresAt")
	})
}

func TestAuditLog_LinkResolved(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := events.NewAuditLog(zap.New(core))

	err := sink.LinkResolved(context.Background(), &events.LinkResolved{
		Code:       "abc1234",
		Source:     "store",
		ResolvedAt: time.Now(),
		ClientIP:   "127.0.0.1",
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "link resolved", logs.All()[0].Message)
	assert.Equal(t, "store", logs.All()[0].ContextMap()["source"])
}
