package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultLogger is returned by Get when the context carries no logger.
var defaultLogger = zap.NewNop()

// zapConfig maps conf onto zap's development or production preset.
func zapConfig(conf Config, level zap.AtomicLevel) zap.Config {
	cfg := zap.NewProductionConfig()
	if conf.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "time"

	if len(conf.OutputPaths) > 0 {
		cfg.OutputPaths = conf.OutputPaths
	}
	if len(conf.ErrorOutputPaths) > 0 {
		cfg.ErrorOutputPaths = conf.ErrorOutputPaths
	}
	return cfg
}

// newLogger builds the service logger, attaches fields to every entry and
// makes it the fallback returned by Get.
func newLogger(conf Config, fields ...zap.Field) (*zap.Logger, zap.AtomicLevel, error) {
	if err := conf.Validate(); err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("logger configuration validation failed: %w", err)
	}

	level := zap.NewAtomicLevelAt(conf.Level)
	logger, err := zapConfig(conf, level).Build(
		zap.AddCaller(),
		zap.AddStacktrace(conf.StacktraceLevel),
		zap.Fields(fields...),
	)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	defaultLogger = logger
	logger.Info("logger initialized",
		zap.Stringer("level", conf.Level),
		zap.Bool("development", conf.Development),
	)
	return logger, level, nil
}
