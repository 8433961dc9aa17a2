package messages

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the optional "messages" section.
type Config struct {
	// File is a YAML bundle whose entries override the built-in ones.
	File string `mapstructure:"file"`
}

func newConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	sub := v.Sub("messages")
	if sub == nil {
		return cfg, nil
	}
	if err := sub.UnmarshalExact(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load messages config: %w", err)
	}
	return cfg, nil
}
