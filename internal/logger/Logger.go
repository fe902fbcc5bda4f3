package logger

import (
	"fmt"
	"strings"

	"github.com/devtron-labs/chart-builder/internal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
}

func NewSugardLogger(cfg *internal.Configuration) (*zap.SugaredLogger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	l, err := config.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
