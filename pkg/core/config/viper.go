package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// envConfigFile holds one config file or a comma-separated list merged in order.
const envConfigFile = "CONFIG_FILE"

type viperConfig struct {
	files        []string
	noConfigFile bool
}

// ViperOption configures the viper module.
type ViperOption func(*viperConfig)

// WithConfigPath reads configuration from paths instead of CONFIG_FILE. Later
// files override earlier ones.
func WithConfigPath(paths ...string) ViperOption {
	return func(cfg *viperConfig) {
		cfg.files = append(cfg.files, paths...)
	}
}

// WithoutConfigFile provides a viper instance backed only by environment variables.
func WithoutConfigFile() ViperOption {
	return func(cfg *viperConfig) {
		cfg.noConfigFile = true
	}
}

// ConfigFiles are the resolved configuration files in merge order.
type ConfigFiles []string

// NewViperModule provides *viper.Viper built from the WithConfigPath files, else
// CONFIG_FILE, else environment variables only.
func NewViperModule(opts ...ViperOption) fx.Option {
	cfg := &viperConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Module("viper",
		fx.Supply(resolveConfigFiles(cfg)),
		fx.Provide(newViper),
		fx.Invoke(func(logger *zap.Logger, files ConfigFiles, v *viper.Viper) {
			logger.Info("configuration loaded",
				zap.Strings("files", files),
				zap.Strings("sections", lo.Keys(v.AllSettings())),
			)
		}),
	)
}

func resolveConfigFiles(cfg *viperConfig) ConfigFiles {
	if cfg.noConfigFile {
		return nil
	}
	if len(cfg.files) > 0 {
		return cfg.files
	}
	return splitList(os.Getenv(envConfigFile))
}

func splitList(value string) ConfigFiles {
	parts := lo.Map(strings.Split(value, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
	return lo.Compact(parts)
}

// newViper merges files in order on top of the environment. Environment
// variables win over every file: server.rate-limit.burst is SERVER_RATE_LIMIT_BURST.
func newViper(files ConfigFiles) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for i, file := range files {
		v.SetConfigFile(file)
		read := v.MergeInConfig
		if i == 0 {
			read = v.ReadInConfig
		}
		if err := read(); err != nil {
			return nil, fmt.Errorf("failed to read config file [%s]: %w", file, err)
		}
	}

	return v, nil
}
