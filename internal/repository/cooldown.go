package repository

import (
	"context"
	"time"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// Cooldown defines the interface for cooldown entry persistence.
// Upserts are last-write-wins keyed by (actor, crate).
type Cooldown interface {
	LoadActiveCooldowns(ctx context.Context, now time.Time) ([]domain.CooldownEntry, error)
	UpsertCooldown(ctx context.Context, entry domain.CooldownEntry) error
	DeleteCooldown(ctx context.Context, actorID, crateID string) error
	// DeleteExpiredCooldown removes the row only if it expired at or before now
	DeleteExpiredCooldown(ctx context.Context, actorID, crateID string, now time.Time) error
	DeleteExpiredCooldowns(ctx context.Context, now time.Time) (int64, error)
}
