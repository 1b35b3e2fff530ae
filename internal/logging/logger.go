// Package logging builds the zap loggers the harvester runs with: a colored
// console logger with debug output for local development, and sampled JSON at
// info level for deployed runs.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/techjobs/harvester/internal/config"
)

// New builds the service logger from the logging section of the config.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.DisableStacktrace = false
	}
	zapCfg.EncoderConfig.TimeKey = "ts"

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
