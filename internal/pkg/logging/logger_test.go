package logging_test

import (
	"testing"

	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromCore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := logging.FromCore(core).With("component", "test")

	logger.Debug("dropped")
	logger.Info("Order status changed", "order_id", "abc", "to", "READY")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Order status changed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "test", fields["component"])
	assert.Equal(t, "abc", fields["order_id"])
	assert.Equal(t, "READY", fields["to"])
}

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", " WARN ", "", "verbose"} {
		t.Run(level, func(t *testing.T) {
			logger, zl, err := logging.New(level)
			require.NoError(t, err)
			assert.NotNil(t, logger)
			assert.NotNil(t, zl)
		})
	}
}

func TestNew_LevelIsApplied(t *testing.T) {
	_, zl, err := logging.New("warn")
	require.NoError(t, err)

	assert.False(t, zl.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zl.Core().Enabled(zapcore.WarnLevel))
}
