package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port            int      `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	APIKey          string   `env:"API_KEY" validate:"required"` // API key for authentication
	TrustedProxies  []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxRequestBytes int64    `env:"MAX_REQUEST_BYTES" envDefault:"1048576" validate:"min=1"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat       string   `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogDir          string   `env:"LOG_DIR" envDefault:"logs"`
	Environment     string   `env:"ENVIRONMENT" envDefault:"dev"`
	Version         string   `env:"VERSION" envDefault:"dev"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"data/lootcrates.db" validate:"required_if=StorageBackend sqlite"`
	DBUser         string `env:"DB_USER" envDefault:"postgres" validate:"required_if=StorageBackend postgres"`
	DBPassword     string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost         string `env:"DB_HOST" envDefault:"localhost" validate:"required_if=StorageBackend postgres"`
	DBPort         string `env:"DB_PORT" envDefault:"5432" validate:"required_if=StorageBackend postgres"`
	DBName         string `env:"DB_NAME" envDefault:"lootcrates" validate:"required_if=StorageBackend postgres"`
	DBMaxConns     int32  `env:"DB_MAX_CONNS" envDefault:"10" validate:"min=1"`

	CratesConfig string `env:"CRATES_CONFIG" envDefault:"config/config.yml"`
	CratesDir    string `env:"CRATES_DIR" envDefault:"config/crates"`
	MessagesFile string `env:"MESSAGES_FILE"`
	Locale       string `env:"LOCALE" envDefault:"en" validate:"bcp47_language_tag"`

	WriteWorkers          int           `env:"WRITE_WORKERS" envDefault:"4" validate:"min=1"`
	WriteQueueSize        int           `env:"WRITE_QUEUE_SIZE" envDefault:"1024" validate:"min=0"`
	FlushInterval         time.Duration `env:"FLUSH_INTERVAL" envDefault:"5m"`
	CooldownSweepInterval time.Duration `env:"COOLDOWN_SWEEP_INTERVAL" envDefault:"10m"`
	PityPersist           bool          `env:"PITY_PERSIST" envDefault:"false"`
	RNGSeed               uint64        `env:"RNG_SEED" envDefault:"0"`
	MaintenanceMode       bool          `env:"MAINTENANCE_MODE" envDefault:"false"`

	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID" validate:"required_with=DiscordToken"`
}

var validate = newValidator()

// newValidator reports failing fields by their environment variable name
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("env"), ",", 2)[0]
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseEnv, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}
	return cfg, nil
}

// IsPostgres reports whether the networked backend is selected
func (c *Config) IsPostgres() bool {
	return c.StorageBackend == BackendPostgres
}

// DiscordEnabled reports whether rare finds are announced on Discord
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
