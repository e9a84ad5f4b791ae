package sqlite

import (
	"context"
	"time"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

func (s *Store) LoadPityCounters(ctx context.Context) ([]domain.PityEntry, error) {
	rows, err := s.db.QueryContext(ctx, sqlLoadPityCounters)
	if err != nil {
		return nil, storageErr(OpLoadPity, err)
	}
	defer rows.Close()

	var out []domain.PityEntry
	for rows.Next() {
		var e domain.PityEntry
		if err := rows.Scan(&e.ActorID, &e.CrateID, &e.Count); err != nil {
			return nil, storageErr(OpLoadPity, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(OpLoadPity, err)
	}
	return out, nil
}

func (s *Store) UpsertPityCounter(ctx context.Context, entry domain.PityEntry) error {
	_, err := s.db.ExecContext(ctx, sqlUpsertPityCounter, entry.ActorID, entry.CrateID, entry.Count, millis(time.Now()))
	if err != nil {
		return storageErr(OpUpsertPity, err)
	}
	return nil
}

func (s *Store) DeletePityCounter(ctx context.Context, actorID, crateID string) error {
	if _, err := s.db.ExecContext(ctx, sqlDeletePityCounter, actorID, crateID); err != nil {
		return storageErr(OpDeletePity, err)
	}
	return nil
}
