package cooldown

// =============================================================================
// Storage
// =============================================================================

const (
	// TableCooldowns labels background writes against the cooldown table
	TableCooldowns = "lc_cooldowns"

	// keySeparator joins actor and crate ids in cache keys
	keySeparator = ":"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	// ErrMsgLoadCooldownsFailed is returned when the startup bulk read fails
	ErrMsgLoadCooldownsFailed = "failed to load cooldowns: %w"

	// ErrFmtCooldown formats the ErrOnCooldown message
	ErrFmtCooldown = "crate '%s' on cooldown: %s remaining"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgCooldownsLoaded   = "Loaded active cooldowns"
	LogMsgCooldownSet       = "Cooldown set"
	LogMsgCooldownEvicted   = "Expired cooldown evicted"
	LogMsgCooldownsSwept    = "Swept expired cooldowns"
	LogMsgWriteDropped      = "Cooldown write not scheduled"
	LogMsgSweepDeleteFailed = "Failed to delete expired cooldowns"
)

// =============================================================================
// Log Field Keys
// =============================================================================

const (
	LogFieldActor   = "actor_id"
	LogFieldCrate   = "crate_id"
	LogFieldCount   = "count"
	LogFieldExpires = "expires_at"
	LogFieldError   = "error"
)
