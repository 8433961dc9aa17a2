package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// defaultDotEnvFiles are tried in order; a variable set by an earlier file or
// by the process environment is never overwritten.
var defaultDotEnvFiles = []string{".env.local", ".env"}

// DotEnvOption configures the dotenv module.
type DotEnvOption func(*[]string)

// WithDotEnvPath loads paths instead of .env.local and .env.
func WithDotEnvPath(paths ...string) DotEnvOption {
	return func(files *[]string) {
		*files = paths
	}
}

// NewDotEnvModule loads the files while the fx graph is built, so variables
// they define are visible to every constructor. Missing files are skipped.
func NewDotEnvModule(opts ...DotEnvOption) fx.Option {
	files := defaultDotEnvFiles
	for _, opt := range opts {
		opt(&files)
	}

	loaded, failed := loadDotEnv(files)

	return fx.Module("dotenv",
		fx.Invoke(func(logger *zap.Logger) {
			if len(loaded) > 0 {
				logger.Info("loaded .env files", zap.Strings("paths", loaded))
			}
			for path, err := range failed {
				logger.Warn("failed to load .env file", zap.String("path", path), zap.Error(err))
			}
		}),
	)
}

func loadDotEnv(files []string) (loaded []string, failed map[string]error) {
	failed = make(map[string]error)
	for _, path := range lo.Uniq(files) {
		err := godotenv.Load(path)
		switch {
		case err == nil:
			loaded = append(loaded, path)
		case !errors.Is(err, fs.ErrNotExist):
			failed[path] = err
		}
	}
	return loaded, failed
}
