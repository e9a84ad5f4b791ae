package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// EnqueueReward appends a reward for later delivery and returns its row id
func (s *Store) EnqueueReward(ctx context.Context, reward *domain.QueuedReward) (int64, error) {
	payload := reward.Payload
	if len(payload) == 0 {
		payload = []byte(EmptyPayloadJSON)
	}
	createdAt := reward.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id int64
	err := s.pool.QueryRow(ctx, sqlEnqueueReward,
		reward.ActorID, reward.CrateID, reward.RewardID, payload, createdAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, storageErr(OpEnqueueReward, err)
	}
	reward.ID = id
	return id, nil
}

// CountQueuedRewards is the number of rewards waiting for the actor
func (s *Store) CountQueuedRewards(ctx context.Context, actorID string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, sqlCountQueuedRewards, actorID).Scan(&n); err != nil {
		return 0, storageErr(OpCountQueued, err)
	}
	return n, nil
}

// ListQueuedRewards returns the actor's queue oldest first
func (s *Store) ListQueuedRewards(ctx context.Context, actorID string) ([]domain.QueuedReward, error) {
	rows, err := s.pool.Query(ctx, sqlListQueuedRewards, actorID)
	if err != nil {
		return nil, storageErr(OpListQueued, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.QueuedReward, error) {
		var q domain.QueuedReward
		err := row.Scan(&q.ID, &q.ActorID, &q.CrateID, &q.RewardID, &q.Payload, &q.CreatedAt)
		q.CreatedAt = q.CreatedAt.UTC()
		return q, err
	})
	if err != nil {
		return nil, storageErr(OpListQueued, err)
	}
	return out, nil
}
