package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// LoadPityCounters returns every persisted counter
func (s *Store) LoadPityCounters(ctx context.Context) ([]domain.PityEntry, error) {
	rows, err := s.pool.Query(ctx, sqlLoadPityCounters)
	if err != nil {
		return nil, storageErr(OpLoadPity, err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.PityEntry])
	if err != nil {
		return nil, storageErr(OpLoadPity, err)
	}
	return entries, nil
}

func (s *Store) UpsertPityCounter(ctx context.Context, entry domain.PityEntry) error {
	if _, err := s.pool.Exec(ctx, sqlUpsertPityCounter, entry.ActorID, entry.CrateID, entry.Count); err != nil {
		return storageErr(OpUpsertPity, err)
	}
	return nil
}

func (s *Store) DeletePityCounter(ctx context.Context, actorID, crateID string) error {
	if _, err := s.pool.Exec(ctx, sqlDeletePityCounter, actorID, crateID); err != nil {
		return storageErr(OpDeletePity, err)
	}
	return nil
}
