package domain

import "time"

// AttemptState is the progress marker of a single open attempt
type AttemptState string

const (
	StateRequested       AttemptState = "requested"
	StateKeyValidated    AttemptState = "key_validated"
	StateCooldownChecked AttemptState = "cooldown_checked"
	StateRewardSelected  AttemptState = "reward_selected"
	StateDistributed     AttemptState = "distributed"
	StateRecorded        AttemptState = "recorded"
	StateComplete        AttemptState = "complete"
	StateRejected        AttemptState = "rejected"
)

// RejectReason explains why an attempt never reached distribution
type RejectReason string

const (
	RejectUnavailable         RejectReason = "unavailable"
	RejectNotFound            RejectReason = "not_found"
	RejectNoPermission        RejectReason = "no_permission"
	RejectNoKey               RejectReason = "no_key"
	RejectOnCooldown          RejectReason = "on_cooldown"
	RejectNoRewardsConfigured RejectReason = "no_rewards_configured"
	RejectDailyLimitReached   RejectReason = "daily_limit_reached"
	RejectWrongOpenMethod     RejectReason = "wrong_open_method"
	RejectMaintenance         RejectReason = "maintenance"
	RejectVetoed              RejectReason = "vetoed"
)

// Sentinel maps a reason to the matching domain error
func (r RejectReason) Sentinel() error {
	switch r {
	case RejectNotFound:
		return ErrCrateNotFound
	case RejectNoPermission:
		return ErrNoPermission
	case RejectNoKey:
		return ErrNoKey
	case RejectOnCooldown:
		return ErrOnCooldown
	case RejectNoRewardsConfigured:
		return ErrEmptyRewardPool
	case RejectDailyLimitReached:
		return ErrDailyLimitReached
	case RejectWrongOpenMethod:
		return ErrWrongOpenMethod
	case RejectMaintenance:
		return ErrMaintenance
	case RejectVetoed:
		return ErrRejectedByHook
	default:
		return ErrCrateUnavailable
	}
}

// OpenRequest identifies one open attempt
type OpenRequest struct {
	ActorID          string
	Username         string
	CrateID          string
	UsingPhysicalKey bool
	Force            bool
}

// OpenResult reports the terminal state of an attempt.
// Reward is nil when the attempt was rejected. Failures names the payout parts
// that failed; their causes are only logged.
type OpenResult struct {
	ActorID     string        `json:"actor_id"`
	CrateID     string        `json:"crate_id"`
	State       AttemptState  `json:"state"`
	Reason      RejectReason  `json:"reason,omitempty"`
	Reward      *Reward       `json:"-"`
	RewardID    string        `json:"reward_id,omitempty"`
	PityApplied bool          `json:"pity_applied"`
	Remaining   time.Duration `json:"remaining,omitempty"`
	Failures    []string      `json:"failures,omitempty"`
}

// Succeeded reports whether the attempt reached Complete
func (r *OpenResult) Succeeded() bool {
	return r != nil && r.State == StateComplete
}
