package sqlite

import (
	"context"
	"time"

	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/domain"
)

func (s *Store) EnqueueReward(ctx context.Context, reward *domain.QueuedReward) (int64, error) {
	payload := string(reward.Payload)
	if payload == "" {
		payload = EmptyPayloadJSON
	}
	createdAt := reward.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, sqlEnqueueReward,
		reward.ActorID, reward.CrateID, reward.RewardID, payload, millis(createdAt))
	if err != nil {
		return 0, storageErr(OpEnqueueReward, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr(OpEnqueueReward, err)
	}
	reward.ID = id
	return id, nil
}

func (s *Store) CountQueuedRewards(ctx context.Context, actorID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, sqlCountQueuedRewards, actorID).Scan(&n); err != nil {
		return 0, storageErr(OpCountQueued, err)
	}
	return n, nil
}

func (s *Store) ListQueuedRewards(ctx context.Context, actorID string) ([]domain.QueuedReward, error) {
	rows, err := s.db.QueryContext(ctx, sqlListQueuedRewards, actorID)
	if err != nil {
		return nil, storageErr(OpListQueued, err)
	}
	defer rows.Close()

	var out []domain.QueuedReward
	for rows.Next() {
		var (
			q         domain.QueuedReward
			payload   string
			createdAt int64
		)
		if err := rows.Scan(&q.ID, &q.ActorID, &q.CrateID, &q.RewardID, &payload, &createdAt); err != nil {
			return nil, storageErr(OpListQueued, err)
		}
		q.Payload = []byte(payload)
		q.CreatedAt = clock.FromUnixMilli(createdAt)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(OpListQueued, err)
	}
	return out, nil
}
