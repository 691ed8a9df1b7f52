package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_TagsModule(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("auth", "user registered", map[string]interface{}{"user_id": uint(7)})
	l.Debug("chat", "prompt sent", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "user registered", entries[0].Message)
	assert.Equal(t, "auth", entries[0].ContextMap()["module"])
	assert.Equal(t, "chat", entries[1].ContextMap()["module"])
}

func TestZapLogger_ErrorAttachesCause(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Error("chat", "remote call failed", map[string]interface{}{"error": errors.New("boom")})

	entries := logs.FilterMessage("remote call failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
}
