package config

// Storage backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Example values shipped in .env.example that must not reach production
const (
	ExamplePassword = "change_this_secure_password"
	ExampleAPIKey   = "generate_with_openssl_rand_hex_32"

	DefaultDBPassword = "postgres"
)

const (
	WarnExampleAPIKey      = "API_KEY is the example value; generate one with: openssl rand -hex 32"
	WarnDefaultDBPassword  = "DB_PASSWORD is a default or example value"
	WarnFixedSeed          = "RNG_SEED is fixed in production; crate rolls are predictable"
	WarnBadTrustedProxy    = "TRUSTED_PROXIES entry %q is neither an IP nor a CIDR and is ignored"
	WarnDiscordOutsideProd = "Discord announcements are enabled outside production"
)

const (
	ErrMsgParseEnv      = "failed to parse environment"
	ErrMsgInvalidConfig = "invalid configuration"
)
