package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the CLI's structured logger, reading its level from
// HYPERANF_LOG_LEVEL (default info). The CLI surface logs one line per
// operation; the library's hot inner loops stay silent regardless of
// this setting.
func newLogger() (*zap.Logger, error) {
	levelText := os.Getenv("HYPERANF_LOG_LEVEL")
	if levelText == "" {
		levelText = "info"
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}
