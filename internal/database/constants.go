package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Storage backends
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToCreateMigrator  = "failed to create migration provider"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgFailedToReadStatus      = "failed to read migration status"
	ErrMsgUnknownBackend          = "unknown storage backend"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgMigrationsUpToDate              = "Database schema is up to date"

	LogFieldVersion  = "version"
	LogFieldPath     = "path"
	LogFieldDuration = "duration"
	LogFieldBackend  = "backend"
)
