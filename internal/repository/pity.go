package repository

import (
	"context"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// Pity defines the interface for optional pity counter persistence
type Pity interface {
	LoadPityCounters(ctx context.Context) ([]domain.PityEntry, error)
	UpsertPityCounter(ctx context.Context, entry domain.PityEntry) error
	DeletePityCounter(ctx context.Context, actorID, crateID string) error
}
