package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// Warnings lists settings that load fine but are risky to run with.
// Nothing here blocks startup.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, WarnExampleAPIKey)
	}
	if c.IsPostgres() && (c.DBPassword == ExamplePassword || c.DBPassword == DefaultDBPassword) {
		warnings = append(warnings, WarnDefaultDBPassword)
	}
	if c.IsProduction() && c.RNGSeed != 0 {
		warnings = append(warnings, WarnFixedSeed)
	}
	for _, entry := range c.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, err := netip.ParsePrefix(entry); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(entry); err != nil {
			warnings = append(warnings, fmt.Sprintf(WarnBadTrustedProxy, entry))
		}
	}
	if c.DiscordEnabled() && !c.IsProduction() {
		warnings = append(warnings, WarnDiscordOutsideProd)
	}
	return warnings
}

// IsProduction reports whether ENVIRONMENT names a production deployment
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	}
	return false
}
