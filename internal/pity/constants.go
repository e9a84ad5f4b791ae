package pity

// TablePityCounters labels background writes against the pity table
const TablePityCounters = "lc_pity_counters"

// Log messages
const (
	LogMsgNoPityCandidates = "Pity triggered but no rare or special reward exists, falling back to normal roll"
	LogMsgPityLoaded       = "Loaded pity counters"
	LogMsgPityTriggered    = "Pity protection triggered"
	LogMsgWriteDropped     = "Pity counter write not scheduled"
)

// Log field keys
const (
	LogFieldActor = "actor_id"
	LogFieldCrate = "crate_id"
	LogFieldCount = "count"
)

// ErrMsgLoadPityFailed wraps a failed startup read
const ErrMsgLoadPityFailed = "failed to load pity counters: %w"
