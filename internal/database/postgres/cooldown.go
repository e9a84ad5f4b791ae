package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// LoadActiveCooldowns returns every entry still running at now
func (s *Store) LoadActiveCooldowns(ctx context.Context, now time.Time) ([]domain.CooldownEntry, error) {
	rows, err := s.pool.Query(ctx, sqlLoadActiveCooldowns, now.UTC())
	if err != nil {
		return nil, storageErr(OpLoadCooldowns, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CooldownEntry, error) {
		var e domain.CooldownEntry
		err := row.Scan(&e.ActorID, &e.CrateID, &e.ExpiresAt)
		e.ExpiresAt = e.ExpiresAt.UTC()
		return e, err
	})
	if err != nil {
		return nil, storageErr(OpLoadCooldowns, err)
	}
	return entries, nil
}

// UpsertCooldown records or replaces an expiry
func (s *Store) UpsertCooldown(ctx context.Context, entry domain.CooldownEntry) error {
	if _, err := s.pool.Exec(ctx, sqlUpsertCooldown, entry.ActorID, entry.CrateID, entry.ExpiresAt.UTC()); err != nil {
		return storageErr(OpUpsertCooldown, err)
	}
	return nil
}

// DeleteCooldown removes an entry unconditionally
func (s *Store) DeleteCooldown(ctx context.Context, actorID, crateID string) error {
	if _, err := s.pool.Exec(ctx, sqlDeleteCooldown, actorID, crateID); err != nil {
		return storageErr(OpDeleteCooldown, err)
	}
	return nil
}

// DeleteExpiredCooldown removes an entry only if it had already lapsed at now,
// so a newer expiry written in the meantime survives.
func (s *Store) DeleteExpiredCooldown(ctx context.Context, actorID, crateID string, now time.Time) error {
	if _, err := s.pool.Exec(ctx, sqlDeleteExpiredCooldown, actorID, crateID, now.UTC()); err != nil {
		return storageErr(OpDeleteCooldown, err)
	}
	return nil
}

// DeleteExpiredCooldowns purges every lapsed entry
func (s *Store) DeleteExpiredCooldowns(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, sqlDeleteExpiredCooldowns, now.UTC())
	if err != nil {
		return 0, storageErr(OpDeleteExpired, err)
	}
	return tag.RowsAffected(), nil
}
