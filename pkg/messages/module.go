package messages

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type messagesOptions struct {
	bundles [][]byte
	config  *Config
}

// Option configures the messages module.
type Option func(*messagesOptions)

// WithBundle adds a built-in YAML bundle. Later bundles override earlier ones.
func WithBundle(data []byte) Option {
	return func(opts *messagesOptions) {
		opts.bundles = append(opts.bundles, data)
	}
}

// WithConfig provides a static Config instead of reading the "messages" section.
func WithConfig(cfg Config) Option {
	return func(opts *messagesOptions) {
		opts.config = &cfg
	}
}

// NewMessagesModule provides *Catalog and Resolver built from the bundles and the
// optional override file.
func NewMessagesModule(opts ...Option) fx.Option {
	cfg := &messagesOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Module("messages",
		fx.Supply(cfg),
		fx.Provide(
			provideCatalog,
			func(c *Catalog) Resolver { return c },
		),
	)
}

func provideCatalog(opts *messagesOptions, v *viper.Viper, log *zap.Logger) (*Catalog, error) {
	conf := Config{}
	if opts.config != nil {
		conf = *opts.config
	} else {
		loaded, err := newConfig(v)
		if err != nil {
			return nil, err
		}
		conf = loaded
	}

	catalog, err := NewCatalog(nil)
	if err != nil {
		return nil, err
	}

	for i, bundle := range opts.bundles {
		parsed, err := Parse(bundle)
		if err != nil {
			return nil, fmt.Errorf("bundle %d: %w", i, err)
		}
		catalog = catalog.Merge(parsed)
	}

	if conf.File != "" {
		data, err := os.ReadFile(conf.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read message file [%s]: %w", conf.File, err)
		}
		parsed, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("message file [%s]: %w", conf.File, err)
		}
		catalog = catalog.Merge(parsed)
	}

	log.Info("message catalog loaded", zap.Strings("codes", catalog.Codes()))
	return catalog, nil
}
