package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		l, err := New("debug", "development")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	})

	t.Run("production", func(t *testing.T) {
		l, err := New("warn", "production")
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zap.InfoLevel))
		assert.True(t, l.Core().Enabled(zap.WarnLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New("loud", "development")
		assert.Error(t, err)
	})
}

func TestCoin(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	Coin(zap.New(core), "btc").Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "btc", logs.All()[0].ContextMap()["coin"])
}
