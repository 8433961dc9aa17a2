package basic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const defaultRealm = "Realm"

// Config is the "security.basic" section.
type Config struct {
	// Realm is sent in the WWW-Authenticate challenge.
	Realm string `mapstructure:"realm"`

	// Users replaces the built-in users when not empty.
	Users []UserConfig `mapstructure:"users"`

	// PublicPaths are path prefixes served without credentials.
	PublicPaths []string `mapstructure:"public-paths"`

	// Rules restrict path prefixes to roles. The first matching rule wins; paths
	// without a rule only need a valid user.
	Rules []RuleConfig `mapstructure:"rules"`
}

type UserConfig struct {
	Username     string   `mapstructure:"username"`
	PasswordHash string   `mapstructure:"password-hash"`
	Roles        []string `mapstructure:"roles"`
}

type RuleConfig struct {
	Path  string   `mapstructure:"path"`
	Roles []string `mapstructure:"roles"`
}

// DefaultUsers are the demo accounts, both with password "password".
func DefaultUsers() []UserConfig {
	return []UserConfig{
		{Username: "user", PasswordHash: "$2b$10$NjjNouE6GTnIJxLjC4VEkOEzsc3WfAO2hwlmFVvzulWYxOw3jqmnG", Roles: []string{"USER"}},
		{Username: "admin", PasswordHash: "$2b$10$k1rECz4tUmEDJD6VX850teysP2n5CUwjEKVcy3AtehMOTkgbMwkVm", Roles: []string{"ADMIN"}},
	}
}

// DefaultPublicPaths are the documentation and probe endpoints.
func DefaultPublicPaths() []string {
	return []string{"/swagger-ui", "/v3/api-docs", "/health"}
}

// DefaultRules require ADMIN for the sales API.
func DefaultRules() []RuleConfig {
	return []RuleConfig{{Path: "/sales", Roles: []string{"ADMIN"}}}
}

// SetDefaults fills every empty value.
func (c *Config) SetDefaults() {
	if c.Realm == "" {
		c.Realm = defaultRealm
	}
	if len(c.Users) == 0 {
		c.Users = DefaultUsers()
	}
	if c.PublicPaths == nil {
		c.PublicPaths = DefaultPublicPaths()
	}
	if c.Rules == nil {
		c.Rules = DefaultRules()
	}
}

// Validate rejects users and rules the middleware cannot enforce.
func (c Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Users))
	for i, u := range c.Users {
		if strings.TrimSpace(u.Username) == "" {
			return fmt.Errorf("users[%d].username is required", i)
		}
		if strings.ContainsRune(u.Username, ':') {
			return fmt.Errorf("users[%d].username must not contain ':'", i)
		}
		if _, dup := seen[u.Username]; dup {
			return fmt.Errorf("duplicate user %q", u.Username)
		}
		seen[u.Username] = struct{}{}
		if u.PasswordHash == "" {
			return fmt.Errorf("users[%d].password-hash is required", i)
		}
	}
	for i, r := range c.Rules {
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("rules[%d].path must start with '/'", i)
		}
		if len(r.Roles) == 0 {
			return fmt.Errorf("rules[%d].roles must not be empty", i)
		}
	}
	for i, p := range c.PublicPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("public-paths[%d] must start with '/'", i)
		}
	}
	return nil
}

func newConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if sub := v.Sub("security.basic"); sub != nil {
		if err := sub.UnmarshalExact(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to load security.basic config: %w", err)
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Join(errors.New("invalid security.basic config"), err)
	}
	return cfg, nil
}
