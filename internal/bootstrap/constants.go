package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept, the new session included
	LogFileRetentionCount = 9

	// ServiceName tags every log record
	ServiceName = "lootcrates"
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingLootCrates  = "Starting LootCrates"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	LogMsgConfigWarning       = "Configuration warning"

	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStorageReady      = "Storage backend ready"
	LogMsgPityMemoryOnly    = "Pity counters are kept in memory only"
	ErrMsgFailedOpenStorage = "failed to open storage"
	ErrMsgFailedMigrate     = "failed to migrate database"
	ErrMsgFailedCreateDir   = "failed to create data directory"
	ErrMsgFailedLoadState   = "failed to load persisted state"
)

// =============================================================================
// Crate Configuration
// =============================================================================

const (
	LogMsgCratesLoaded         = "Crate configuration loaded"
	LogMsgConfigurationProblem = "Skipped invalid crate definition"
	ErrMsgFailedLoadCrates     = "failed to load crate configuration"
	ErrMsgFailedLoadMessages   = "failed to load message catalog"
	ErrMsgFailedCreateParser   = "failed to create crate parser"
	ErrMsgFailedCreateDiscord  = "failed to create discord session"
	ErrMsgInvalidLocale        = "invalid locale"
)

// =============================================================================
// Scheduled Jobs
// =============================================================================

const (
	JobNameActorFlush    = "actor_flush"
	JobNameCooldownSweep = "cooldown_sweep"
)

const (
	LogMsgDiscordEnabled    = "Discord broadcasts enabled"
	LogMsgMaintenanceOnBoot = "Starting in maintenance mode"
	LogMsgFixedSeed         = "Using fixed RNG seed"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgFlushingActorData    = "Flushing actor data..."
	LogMsgActorFlushFailed     = "Actor data flush failed"
	LogMsgDrainingWrites       = "Draining write queue..."
	LogMsgStoreCloseFailed     = "Storage close failed"
)

// Log field keys
const (
	LogFieldError       = "error"
	LogFieldLevel       = "level"
	LogFieldEnvironment = "environment"
	LogFieldVersion     = "version"
	LogFieldLogFormat   = "log_format"
	LogFieldBackend     = "backend"
	LogFieldPort        = "port"
	LogFieldCount       = "count"
	LogFieldErrors      = "errors"
	LogFieldSources     = "sources"
	LogFieldFile        = "file"
	LogFieldChannel     = "channel_id"
	LogFieldSeed        = "seed"
	LogFieldPending     = "pending"
	LogFieldCratesDir   = "crates_dir"
	LogFieldConfigFile  = "crates_config"
	LogFieldWarning     = "warning"
)
