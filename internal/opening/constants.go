package opening

import "time"

// =============================================================================
// Daily limit
// =============================================================================

const (
	// DailyCounterTTL keeps a day's counter around a little longer than the day itself
	DailyCounterTTL = 25 * time.Hour

	// DefaultDailyCounterSize bounds the number of (actor, crate, day) counters held
	DefaultDailyCounterSize = 100_000

	dayLayout    = "2006-01-02"
	keySeparator = "|"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgActorRequired   = "actor id is required"
	ErrMsgCrateRequired   = "crate id is required"
	ErrMsgInvalidAmount   = "amount must be positive"
	ErrMsgGiveKeyFailed   = "failed to give keys"
	ErrMsgKeyLookupFailed = "failed to read inventory"
	ErrMsgQueueCount      = "failed to count queued rewards"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgOpenRejected        = "Open attempt rejected"
	LogMsgOpenCompleted       = "Crate opened"
	LogMsgForceOpen           = "Force opening crate"
	LogMsgEmptyRewardPool     = "Crate has no rewards to select from"
	LogMsgPartialDistribution = "Reward only partially distributed"
	LogMsgKeyTakeFailed       = "Key removal failed"
	LogMsgKeysGiven           = "Keys given"
	LogMsgKeysDropped         = "Inventory full, keys dropped near actor"
	LogMsgItemsDropped        = "Inventory full, items dropped near actor"
	LogMsgRewardQueued        = "Actor offline, reward items queued"
	LogMsgSpecialFallback     = "Special item provider unavailable, giving stand-in item"
	LogMsgMaintenanceChanged  = "Maintenance mode changed"
	LogMsgActorLeftMidOpen    = "Actor disconnected during open, finishing distribution"
)

// =============================================================================
// Log Field Keys
// =============================================================================

const (
	LogFieldActor      = "actor_id"
	LogFieldCrate      = "crate_id"
	LogFieldReward     = "reward_id"
	LogFieldRewardType = "reward_type"
	LogFieldReason     = "reason"
	LogFieldPity       = "pity"
	LogFieldForce      = "force"
	LogFieldAmount     = "amount"
	LogFieldCount      = "count"
	LogFieldEnabled    = "enabled"
	LogFieldTemplate   = "template"
	LogFieldError      = "error"
)
