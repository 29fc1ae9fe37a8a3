// Package logging builds the process logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-admaiora/internal/config"
)

// New builds a zap logger from cfg. The returned level can be changed at
// runtime.
func New(cfg config.LoggingConfig) (*zap.Logger, zap.AtomicLevel, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Level != "" {
		parsed, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, level, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}
	zc.Level = level

	switch cfg.Format {
	case "":
	case "json", "console":
		zc.Encoding = cfg.Format
	default:
		return nil, level, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	if zc.Encoding == "console" {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, level, fmt.Errorf("logging: build: %w", err)
	}
	return logger, level, nil
}

// Verbose raises level to debug when enabled.
func Verbose(level zap.AtomicLevel, enabled bool) {
	if enabled {
		level.SetLevel(zapcore.DebugLevel)
	}
}
