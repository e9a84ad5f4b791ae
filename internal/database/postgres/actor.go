package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// GetActorData loads one actor's statistics
func (s *Store) GetActorData(ctx context.Context, actorID string) (*domain.ActorData, error) {
	var (
		d        domain.ActorData
		lastOpen pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, sqlGetActorData, actorID).Scan(
		&d.ActorID, &d.Username, &d.TotalOpens, &d.CurrencyEarned, &d.ItemsReceived, &d.RareFinds,
		&lastOpen, &d.CreatedAt, &d.UpdatedAt, &d.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrActorNotFound, actorID)
		}
		return nil, storageErr(OpGetActorData, err)
	}
	d.LastOpenAt = timeOrZero(lastOpen)
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return &d, nil
}

// UpsertActorData writes a full snapshot of one actor
func (s *Store) UpsertActorData(ctx context.Context, data *domain.ActorData) error {
	if _, err := s.pool.Exec(ctx, sqlUpsertActorData, actorArgs(data)...); err != nil {
		return storageErr(OpUpsertActorData, err)
	}
	return nil
}

// UpsertActorDataBatch writes many snapshots in one round trip
func (s *Store) UpsertActorDataBatch(ctx context.Context, data []domain.ActorData) error {
	if len(data) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i := range data {
		batch.Queue(sqlUpsertActorData, actorArgs(&data[i])...)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range data {
		if _, err := br.Exec(); err != nil {
			return storageErr(OpUpsertActorDataBatch, err)
		}
	}
	return nil
}

func actorArgs(d *domain.ActorData) []any {
	return []any{
		d.ActorID, d.Username, d.TotalOpens, d.CurrencyEarned, d.ItemsReceived, d.RareFinds,
		nullableTime(d.LastOpenAt), d.CreatedAt.UTC(), d.UpdatedAt.UTC(), d.Version,
	}
}
