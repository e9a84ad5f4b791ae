package logger

import (
	"log/slog"
	"strings"
)

// Config describes the process-wide slog handler
type Config struct {
	Level       string
	Format      string
	Service     string
	Version     string
	Environment string
	AddSource   bool
}

// ServiceConfig is the starting point for a binary; callers override what their settings provide
func ServiceConfig(service string) Config {
	return Config{
		Level:       LogLevelInfo,
		Format:      LogFormatText,
		Service:     service,
		Version:     DefaultVersion,
		Environment: EnvironmentDev,
	}
}

// QuietConfig only lets warnings and errors through, for tools whose stdout is the product
func QuietConfig(service string) Config {
	c := ServiceConfig(service)
	c.Level = LogLevelWarn
	return c
}

// IsDevelopment reports whether source locations should be attached
func IsDevelopment(environment string) bool {
	switch strings.ToLower(environment) {
	case EnvironmentDev, EnvironmentDevelopment:
		return true
	}
	return false
}

// LogLevel parses Level, falling back to info. Accepts slog offsets such as "debug+2".
func (c Config) LogLevel() slog.Level {
	name := strings.ToLower(strings.TrimSpace(c.Level))
	if name == LogLevelWarning {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record; empty values are left out
func (c Config) BaseAttributes() []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	for _, kv := range [][2]string{
		{AttrKeyService, c.Service},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
