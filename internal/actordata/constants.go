package actordata

// TableActorData labels background writes against the statistics table
const TableActorData = "lc_player_data"

// Log messages
const (
	LogMsgActorLoadFailed  = "Failed to load actor data, serving an unsaved record"
	LogMsgActorCreated     = "Created actor data record"
	LogMsgActorCreateFail  = "Failed to persist new actor data record"
	LogMsgWriteDropped     = "Actor data write not scheduled"
	LogMsgFlushCompleted   = "Flushed actor data"
	LogMsgActorUnloaded    = "Unloaded actor data"
	LogMsgSkipDegradedSave = "Skipping save of actor data that failed to load"
)

// Log field keys
const (
	LogFieldActor = "actor_id"
	LogFieldCount = "count"
	LogFieldError = "error"
)

// ErrMsgFlushFailed wraps a failed batch upsert
const ErrMsgFlushFailed = "failed to flush actor data: %w"
