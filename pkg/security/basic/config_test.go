package basic

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := newConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, defaultRealm, cfg.Realm)
	assert.Equal(t, DefaultUsers(), cfg.Users)
	assert.Equal(t, DefaultPublicPaths(), cfg.PublicPaths)
	assert.Equal(t, DefaultRules(), cfg.Rules)
}

func TestNewConfig_FromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
security:
  basic:
    realm: sales
    users:
      - username: ops
        password-hash: "$2b$10$k1rECz4tUmEDJD6VX850teysP2n5CUwjEKVcy3AtehMOTkgbMwkVm"
        roles: [ADMIN, USER]
    rules:
      - path: /sales
        roles: [ADMIN]
`)))

	cfg, err := newConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "sales", cfg.Realm)
	require.Len(t, cfg.Users, 1)
	assert.Equal(t, "ops", cfg.Users[0].Username)
	assert.Equal(t, []string{"ADMIN", "USER"}, cfg.Users[0].Roles)
	assert.Equal(t, DefaultPublicPaths(), cfg.PublicPaths)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "blank username", cfg: Config{Users: []UserConfig{{Username: " ", PasswordHash: "x"}}}},
		{name: "colon in username", cfg: Config{Users: []UserConfig{{Username: "a:b", PasswordHash: "x"}}}},
		{name: "duplicate user", cfg: Config{Users: []UserConfig{{Username: "a", PasswordHash: "x"}, {Username: "a", PasswordHash: "y"}}}},
		{name: "missing hash", cfg: Config{Users: []UserConfig{{Username: "a"}}}},
		{name: "relative rule path", cfg: Config{Rules: []RuleConfig{{Path: "sales", Roles: []string{"ADMIN"}}}}},
		{name: "rule without roles", cfg: Config{Rules: []RuleConfig{{Path: "/sales"}}}},
		{name: "relative public path", cfg: Config{PublicPaths: []string{"health"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.SetDefaults()
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
