package logger

// Level names accepted in LOG_LEVEL besides slog's own
const (
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const DefaultVersion = "dev"

const (
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
)

// Log Attribute Keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
