package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultPort = 8080

type Config struct {
	Port int `mapstructure:"port"`

	// Server connection settings
	Connection ConnectionConfig `mapstructure:"connection"`

	// Rate Limiting
	RateLimit RateLimitConfig `mapstructure:"rate-limit"`

	// HTTP Bulkhead
	Bulkhead BulkheadConfig `mapstructure:"bulkhead"`
}

// ConnectionConfig contains low-level HTTP server connection settings.
// These are "hard" timeouts that close the connection without an HTTP response.
type ConnectionConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read-header-timeout"`
	ReadTimeout       time.Duration `mapstructure:"read-timeout"`
	WriteTimeout      time.Duration `mapstructure:"write-timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle-timeout"`
	MaxHeaderBytes    int           `mapstructure:"max-header-bytes"`
}

type RateLimitConfig struct {
	Enabled           *bool `mapstructure:"enabled"`
	RequestsPerSecond int   `mapstructure:"requests-per-second"`
	Burst             int   `mapstructure:"burst"`
}

type BulkheadConfig struct {
	Enabled       *bool         `mapstructure:"enabled"`
	MaxConcurrent int           `mapstructure:"max-concurrent"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// IsEnabled reports whether rate limiting is on. Unset means on.
func (c RateLimitConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// IsEnabled reports whether the bulkhead is on. Unset means on.
func (c BulkheadConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func newConfig(v *viper.Viper, logger *zap.Logger) (Config, error) {
	var cfg Config
	if sub := v.Sub("server"); sub != nil {
		if err := sub.UnmarshalExact(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to load server config: %w", err)
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logger.Info("loaded server config", zap.Any("config", cfg))
	return cfg, nil
}

// SetDefaults fills every unset value.
func (c *Config) SetDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	c.Connection.setDefaults()
	c.RateLimit.setDefaults()
	c.Bulkhead.setDefaults()
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Port)
	}
	if c.RateLimit.IsEnabled() && (c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0) {
		return fmt.Errorf("rate-limit requests-per-second and burst must not be negative")
	}
	if c.Bulkhead.IsEnabled() && c.Bulkhead.MaxConcurrent < 0 {
		return fmt.Errorf("bulkhead max-concurrent must not be negative")
	}
	return nil
}

func (c *ConnectionConfig) setDefaults() {
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = 10 * time.Second // Slowloris protection
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 40 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 120 * time.Second
	}
	if c.MaxHeaderBytes == 0 {
		c.MaxHeaderBytes = 1 << 20
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func (c *RateLimitConfig) setDefaults() {
	if c.Enabled == nil {
		c.Enabled = boolPtr(true)
	}
	if !*c.Enabled {
		return
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = 1000
	}
	if c.Burst == 0 {
		c.Burst = 100
	}
}

func (c *BulkheadConfig) setDefaults() {
	if c.Enabled == nil {
		c.Enabled = boolPtr(true)
	}
	if !*c.Enabled {
		return
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 500
	}
	if c.Timeout == 0 {
		c.Timeout = 100 * time.Millisecond
	}
}
