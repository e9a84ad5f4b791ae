package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func safeConfig() *Config {
	return &Config{
		APIKey:         "3f9c0d",
		StorageBackend: BackendSQLite,
		DBPassword:     DefaultDBPassword,
		Environment:    "prod",
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   []string
	}{
		{"clean config", func(c *Config) {}, nil},
		{"default password ignored on sqlite", func(c *Config) { c.DBPassword = ExamplePassword }, nil},
		{"example api key", func(c *Config) { c.APIKey = ExampleAPIKey }, []string{WarnExampleAPIKey}},
		{"default postgres password", func(c *Config) { c.StorageBackend = BackendPostgres }, []string{WarnDefaultDBPassword}},
		{"fixed seed in production", func(c *Config) { c.RNGSeed = 7 }, []string{WarnFixedSeed}},
		{"fixed seed in dev", func(c *Config) { c.RNGSeed = 7; c.Environment = "dev" }, nil},
		{"valid proxies", func(c *Config) { c.TrustedProxies = []string{"10.0.0.1", "192.168.0.0/16", " "} }, nil},
		{
			"bad proxy",
			func(c *Config) { c.TrustedProxies = []string{"10.0.0.1", "proxy.local"} },
			[]string{`TRUSTED_PROXIES entry "proxy.local" is neither an IP nor a CIDR and is ignored`},
		},
		{
			"discord outside production",
			func(c *Config) { c.DiscordToken, c.DiscordChannelID, c.Environment = "tok", "123", "staging" },
			[]string{WarnDiscordOutsideProd},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := safeConfig()
			tt.mutate(cfg)
			assert.Equal(t, tt.want, cfg.Warnings())
		})
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Environment: "Production"}).IsProduction())
	assert.True(t, (&Config{Environment: "prod"}).IsProduction())
	assert.False(t, (&Config{Environment: "dev"}).IsProduction())
}
