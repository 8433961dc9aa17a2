package logger

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config controls how the service logger is built.
type Config struct {
	// Level is the minimum enabled level.
	Level zapcore.Level

	// Development switches to console encoding with human-readable timestamps.
	Development bool

	// OutputPaths are URLs or file paths for log output. Defaults to stderr.
	OutputPaths []string

	// ErrorOutputPaths are URLs or file paths for internal logger errors. Defaults to stderr.
	ErrorOutputPaths []string

	// StacktraceLevel is the minimum level that captures stacktraces. Defaults to ErrorLevel.
	StacktraceLevel zapcore.Level
}

// rawConfig mirrors the "logger" config section before levels are parsed.
type rawConfig struct {
	Level            string   `mapstructure:"level"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output-paths"`
	ErrorOutputPaths []string `mapstructure:"error-output-paths"`
	StacktraceLevel  string   `mapstructure:"stacktrace-level"`
}

func defaultConfig() Config {
	return Config{
		Level:           zapcore.InfoLevel,
		StacktraceLevel: zapcore.ErrorLevel,
	}
}

// Validate rejects blank output paths.
func (c Config) Validate() error {
	if err := validatePaths(c.OutputPaths, "output-paths"); err != nil {
		return err
	}
	return validatePaths(c.ErrorOutputPaths, "error-output-paths")
}

func validatePaths(paths []string, fieldName string) error {
	for i, path := range paths {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("%s[%d] cannot be empty or whitespace", fieldName, i)
		}
	}
	return nil
}

func newConfig(v *viper.Viper) (Config, error) {
	sub := v.Sub("logger")
	if sub == nil {
		return defaultConfig(), nil
	}

	var raw rawConfig
	if err := sub.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("failed to load logger config: %w", err)
	}

	cfg := defaultConfig()
	cfg.Development = raw.Development
	cfg.OutputPaths = raw.OutputPaths
	cfg.ErrorOutputPaths = raw.ErrorOutputPaths

	if raw.Level != "" {
		level, err := zapcore.ParseLevel(raw.Level)
		if err != nil {
			return Config{}, fmt.Errorf("invalid log level '%s': %w", raw.Level, err)
		}
		cfg.Level = level
	}

	if raw.StacktraceLevel != "" {
		level, err := zapcore.ParseLevel(raw.StacktraceLevel)
		if err != nil {
			return Config{}, fmt.Errorf("invalid stacktrace level '%s': %w", raw.StacktraceLevel, err)
		}
		cfg.StacktraceLevel = level
	}

	return cfg, nil
}
