package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidParam          = "Invalid %s parameter"

	ErrMsgOpenCrateFailed     = "Failed to open crate"
	ErrMsgGiveKeysFailed      = "Failed to give keys"
	ErrMsgKeyCountFailed      = "Failed to count keys"
	ErrMsgReloadFailed        = "Failed to reload crate configuration"
	ErrMsgFlushFailed         = "Failed to flush actor data"
	ErrMsgDatabaseUnavailable = "database connection failed"
)

// Success messages for API responses
const (
	MsgKeysGiven          = "Keys given"
	MsgMaintenanceEnabled = "Maintenance mode enabled"
	MsgMaintenanceOff     = "Maintenance mode disabled"
	MsgActorDataFlushed   = "Actor data flushed"
)

// Health statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Route parameters
const (
	ParamCrateID = "id"
	ParamActorID = "actor"
	ParamCrate   = "crate"

	QueryActorID = "actor_id"
)

// Log messages
const (
	LogMsgDecodeFailed       = "Failed to decode request"
	LogMsgRequestDecoded     = "Request decoded"
	LogMsgMissingParam       = "Missing request parameter"
	LogMsgInvalidParam       = "Invalid request parameter"
	LogMsgServiceError       = "Service error"
	LogMsgOpenAttempt        = "Open attempt finished"
	LogMsgKeysGiven          = "Keys given"
	LogMsgRegistryReloaded   = "Crate registry reloaded via API"
	LogMsgMaintenanceToggled = "Maintenance toggled via API"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"

	LogFieldError   = "error"
	LogFieldAction  = "action"
	LogFieldParam   = "param"
	LogFieldActor   = "actor_id"
	LogFieldCrate   = "crate_id"
	LogFieldState   = "state"
	LogFieldReason  = "reason"
	LogFieldAmount  = "amount"
	LogFieldCount   = "count"
	LogFieldErrors  = "errors"
	LogFieldEnabled = "enabled"
)
