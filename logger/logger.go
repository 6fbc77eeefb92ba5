// Package logger builds the zap loggers used across the trade tracker
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	serviceName = "tradetracker"
	version     = "1.0.0"
)

// New builds a logger for the given level and environment. The production
// environment gets JSON output without stack traces, anything else the
// development console encoder.
func New(level, environment string) (*zap.Logger, error) {
	var zapConfig zap.Config

	if environment == "production" {
		zapConfig = zap.NewProductionConfig()
		zapConfig.DisableStacktrace = true
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = lvl

	zapConfig.InitialFields = map[string]interface{}{
		"service": serviceName,
		"version": version,
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return zapLogger, nil
}

// Coin returns a child logger carrying the coin symbol field.
func Coin(l *zap.Logger, symbol string) *zap.Logger {
	return l.With(zap.String("coin", symbol))
}
