package repository

import (
	"context"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// ActorData defines the interface for per-actor statistics persistence.
// GetActorData returns domain.ErrActorNotFound when no row exists.
type ActorData interface {
	GetActorData(ctx context.Context, actorID string) (*domain.ActorData, error)
	UpsertActorData(ctx context.Context, data *domain.ActorData) error
	UpsertActorDataBatch(ctx context.Context, data []domain.ActorData) error
}
