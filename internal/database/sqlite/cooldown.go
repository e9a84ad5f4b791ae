package sqlite

import (
	"context"
	"time"

	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/domain"
)

func (s *Store) LoadActiveCooldowns(ctx context.Context, now time.Time) ([]domain.CooldownEntry, error) {
	rows, err := s.db.QueryContext(ctx, sqlLoadActiveCooldowns, millis(now))
	if err != nil {
		return nil, storageErr(OpLoadCooldowns, err)
	}
	defer rows.Close()

	var out []domain.CooldownEntry
	for rows.Next() {
		var (
			e       domain.CooldownEntry
			expires int64
		)
		if err := rows.Scan(&e.ActorID, &e.CrateID, &expires); err != nil {
			return nil, storageErr(OpLoadCooldowns, err)
		}
		e.ExpiresAt = clock.FromUnixMilli(expires)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(OpLoadCooldowns, err)
	}
	return out, nil
}

func (s *Store) UpsertCooldown(ctx context.Context, entry domain.CooldownEntry) error {
	if _, err := s.db.ExecContext(ctx, sqlUpsertCooldown, entry.ActorID, entry.CrateID, millis(entry.ExpiresAt)); err != nil {
		return storageErr(OpUpsertCooldown, err)
	}
	return nil
}

func (s *Store) DeleteCooldown(ctx context.Context, actorID, crateID string) error {
	if _, err := s.db.ExecContext(ctx, sqlDeleteCooldown, actorID, crateID); err != nil {
		return storageErr(OpDeleteCooldown, err)
	}
	return nil
}

func (s *Store) DeleteExpiredCooldown(ctx context.Context, actorID, crateID string, now time.Time) error {
	if _, err := s.db.ExecContext(ctx, sqlDeleteExpiredCooldown, actorID, crateID, millis(now)); err != nil {
		return storageErr(OpDeleteCooldown, err)
	}
	return nil
}

func (s *Store) DeleteExpiredCooldowns(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqlDeleteExpiredCooldowns, millis(now))
	if err != nil {
		return 0, storageErr(OpDeleteExpired, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr(OpDeleteExpired, err)
	}
	return n, nil
}
