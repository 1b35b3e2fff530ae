package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/techjobs/harvester/internal/config"
)

func TestNewLoggerModes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		development  bool
		debugEnabled bool
	}{
		{"Development", true, true},
		{"Production", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			logger, err := New(config.LoggingConfig{Development: tc.development})
			require.NoError(t, err)
			require.NotNil(t, logger)
			defer logger.Sync() //nolint:errcheck // best-effort flush

			// Development mode is the only one that logs at debug level.
			assert.Equal(t, tc.debugEnabled, logger.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
			logger.Info("logger ready")
		})
	}
}
