package swaggerui

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config is the optional "swagger" section.
type Config struct {
	Enabled *bool  `mapstructure:"enabled"`
	Route   string `mapstructure:"route"`
}

func newConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if sub := v.Sub("swagger"); sub != nil {
		if err := sub.UnmarshalExact(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to load swagger config: %w", err)
		}
	}
	return cfg, nil
}

// NewSwaggerModule serves the document and Swagger UI unless swagger.enabled is
// false. swagger.route overrides cfg.Route.
func NewSwaggerModule(cfg SwaggerConfig) fx.Option {
	return fx.Invoke(func(r *gin.Engine, v *viper.Viper, log *zap.Logger) error {
		conf, err := newConfig(v)
		if err != nil {
			return err
		}
		if conf.Enabled != nil && !*conf.Enabled {
			log.Info("swagger ui disabled")
			return nil
		}
		if conf.Route != "" {
			cfg.Route = conf.Route
		}
		return registerSwaggerUI(r, cfg)
	})
}
