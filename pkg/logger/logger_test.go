package logger_test

import (
	"context"
	"testing"

	"noto/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}

	t.Run("logging methods do not panic", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewRequestIDContext(context.Background(), "test-request-id")
		assert.NotPanics(t, func() {
			log.Debug(ctx, "debug message")
			log.Info(ctx, "info message", zap.String("key", "value"))
			log.Warn(ctx, "warn message")
			log.Error(ctx, "error message")
			log.With(zap.String("method", "test")).Info(context.TODO(), "with fields")
		})
	})
}

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		testLogger := logger.NewNop()
		ctx := logger.NewContext(context.Background(), testLogger)

		retrieved, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrieved)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrieved, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrieved)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("success with derived context", func(t *testing.T) {
		type ctxKeyType struct{}
		testLogger := logger.NewNop()

		ctx := logger.NewContext(context.Background(), testLogger)
		derived := context.WithValue(ctx, ctxKeyType{}, "some-value")

		retrieved, err := logger.FromContext(derived)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrieved)
	})
}

func TestLog(t *testing.T) {
	t.Run("prefers context logger", func(t *testing.T) {
		ctxLogger := logger.NewNop()
		ctx := logger.NewContext(context.Background(), ctxLogger)
		assert.Same(t, ctxLogger, logger.Log(ctx))
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		global := logger.NewNop()
		logger.SetGlobalLogger(global)
		defer logger.SetGlobalLogger(nil)

		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("returns fallback logger when nothing is set", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})
}

func TestInitGlobalLogger(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	require.NoError(t, logger.InitGlobalLogger(logger.Production, "info"))
	first := logger.Log(context.Background())
	require.NotNil(t, first)

	require.NoError(t, logger.InitGlobalLogger(logger.Development, "debug"))
	assert.Same(t, first, logger.Log(context.Background()))
}

func TestRequestID(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("generates uuid when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("with request id returns copy", func(t *testing.T) {
		base := logger.NewNop()
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		assert.NotSame(t, base, base.WithRequestID(ctx))
		assert.Same(t, base, base.WithRequestID(context.Background()))
	})
}
