package handler

import (
	"context"
	"time"

	"github.com/osse101/LootCrates_Go/internal/crate"
	"github.com/osse101/LootCrates_Go/internal/domain"
)

// CrateService is the engine surface the API drives
type CrateService interface {
	Open(ctx context.Context, req domain.OpenRequest) (*domain.OpenResult, error)
	ForceOpen(ctx context.Context, actorID, username, crateID string) (*domain.OpenResult, error)
	GiveKeys(ctx context.Context, actorID, crateID string, amount int) error
	KeyCount(ctx context.Context, actorID, crateID string) (int, error)

	ActorStats(ctx context.Context, actorID string) domain.ActorStatsReport
	PityCount(actorID, crateID string) int
	CooldownRemaining(ctx context.Context, actorID, crateID string) time.Duration
	DailyOpens(actorID, crateID string) int

	SetMaintenance(ctx context.Context, enabled bool)
	Maintenance() bool
}

// CrateCatalog is the read and reload side of the crate registry
type CrateCatalog interface {
	Get(id string) (*domain.Crate, bool)
	Crates() []*domain.Crate
	Reload(ctx context.Context) (*crate.LoadReport, error)
}

// Flusher writes cached actor data through to storage
type Flusher interface {
	FlushAll(ctx context.Context) error
}
