package repository

import (
	"context"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// OfflineQueue stores rewards waiting for an absent actor
type OfflineQueue interface {
	EnqueueReward(ctx context.Context, reward *domain.QueuedReward) (int64, error)
	CountQueuedRewards(ctx context.Context, actorID string) (int, error)
	ListQueuedRewards(ctx context.Context, actorID string) ([]domain.QueuedReward, error)
}
