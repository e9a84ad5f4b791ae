package domain

import "time"

// ActorData holds cumulative crate statistics for one actor.
// Records are only ever accumulated, never deleted.
type ActorData struct {
	ActorID        string    `json:"actor_id"`
	Username       string    `json:"username"`
	TotalOpens     int64     `json:"total_opens"`
	CurrencyEarned float64   `json:"currency_earned"`
	ItemsReceived  int64     `json:"items_received"`
	RareFinds      int64     `json:"rare_finds"`
	LastOpenAt     time.Time `json:"last_open_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Version increases with every change; storage keeps the highest one seen
	Version int64 `json:"-"`
}

// NewActorData returns a zeroed record stamped with now
func NewActorData(actorID, username string, now time.Time) *ActorData {
	return &ActorData{
		ActorID:   actorID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LuckRatio is rare finds per open, 0 before the first open
func (a ActorData) LuckRatio() float64 {
	if a.TotalOpens == 0 {
		return 0
	}
	return float64(a.RareFinds) / float64(a.TotalOpens)
}

// AveragePayout is currency earned per open, 0 before the first open
func (a ActorData) AveragePayout() float64 {
	if a.TotalOpens == 0 {
		return 0
	}
	return a.CurrencyEarned / float64(a.TotalOpens)
}

// ActorStatsReport is the read-only view served to reporting collaborators
type ActorStatsReport struct {
	ActorData
	LuckRatio      float64 `json:"luck_ratio"`
	AveragePayout  float64 `json:"average_payout"`
	PendingRewards int     `json:"pending_rewards"`
}

// CooldownEntry is a persisted per-actor, per-crate expiry
type CooldownEntry struct {
	ActorID   string
	CrateID   string
	ExpiresAt time.Time
}

// PityEntry is a persisted per-actor, per-crate consecutive-miss counter
type PityEntry struct {
	ActorID string
	CrateID string
	Count   int
}

// QueuedReward is a row of the offline reward queue
type QueuedReward struct {
	ID        int64
	ActorID   string
	CrateID   string
	RewardID  string
	Payload   []byte
	CreatedAt time.Time
}
