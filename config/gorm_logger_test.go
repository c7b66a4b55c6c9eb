package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newObservedGormLogger(level logger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, 100*time.Millisecond), logs
}

func statement() (string, int64) {
	return "SELECT * FROM posts", 3
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("failed statement is logged as error", func(t *testing.T) {
		l, logs := newObservedGormLogger(logger.Warn)
		l.Trace(ctx, time.Now(), statement, errors.New("boom"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "gorm", entry.LoggerName)
		assert.Equal(t, "SELECT * FROM posts", entry.ContextMap()["sql"])
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, logs := newObservedGormLogger(logger.Warn)
		l.Trace(ctx, time.Now(), statement, gorm.ErrRecordNotFound)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("slow statement is logged as warning", func(t *testing.T) {
		l, logs := newObservedGormLogger(logger.Warn)
		l.Trace(ctx, time.Now().Add(-time.Second), statement, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("fast statement only at info level", func(t *testing.T) {
		l, logs := newObservedGormLogger(logger.Warn)
		l.Trace(ctx, time.Now(), statement, nil)
		assert.Equal(t, 0, logs.Len())

		l.LogMode(logger.Info).Trace(ctx, time.Now(), statement, nil)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("silent drops everything", func(t *testing.T) {
		l, logs := newObservedGormLogger(logger.Silent)
		l.Trace(ctx, time.Now(), statement, errors.New("boom"))
		l.Error(ctx, "failed %d", 1)
		assert.Equal(t, 0, logs.Len())
	})
}

func TestGormLogger_Messages(t *testing.T) {
	l, logs := newObservedGormLogger(logger.Warn)
	ctx := context.Background()

	l.Info(ctx, "hello %s", "world")
	l.Warn(ctx, "careful %d", 2)
	l.Error(ctx, "broken")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "careful 2", logs.All()[0].Message)
	assert.Equal(t, "broken", logs.All()[1].Message)
}
