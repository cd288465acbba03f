// Package logging builds the service's zap logger from LoggingConfig.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tradeforce/internal/config"
)

// New creates a logger writing to cfg.OutputPath ("stdout", "stderr" or a
// file path). Format "console" gives human readable lines, anything else JSON.
// The returned cleanup flushes and closes the sink.
func New(cfg config.LoggingConfig) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(strings.ToLower(defaultString(cfg.Level, "info")))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	sink, closeSink, err := zap.Open(defaultString(cfg.OutputPath, "stdout"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, "console") {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	logger := zap.New(
		zapcore.NewCore(encoder, sink, level),
		zap.AddCaller(),
		zap.Fields(zap.String("service", "chat-svc")),
	)

	cleanup := func() {
		_ = logger.Sync()
		closeSink()
	}
	return logger, cleanup, nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
