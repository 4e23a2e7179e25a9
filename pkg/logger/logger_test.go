package logger_test

import (
	"testing"

	"moviebuffs/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("local environment uses the requested level", func(t *testing.T) {
		l, err := logger.New("local", "debug")

		require.NoError(t, err)
		assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("production environment defaults to info", func(t *testing.T) {
		l, err := logger.New("production", "")

		require.NoError(t, err)
		assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := logger.New("local", "chatty")

		assert.Error(t, err)
	})
}

func TestNOOPLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.NOOPLogger.Infow("listing movies", "page", 0)
	})
}
