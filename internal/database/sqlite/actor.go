package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/domain"
)

func (s *Store) GetActorData(ctx context.Context, actorID string) (*domain.ActorData, error) {
	var (
		d                    domain.ActorData
		lastOpen             sql.NullInt64
		createdAt, updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, sqlGetActorData, actorID).Scan(
		&d.ActorID, &d.Username, &d.TotalOpens, &d.CurrencyEarned, &d.ItemsReceived, &d.RareFinds,
		&lastOpen, &createdAt, &updatedAt, &d.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrActorNotFound, actorID)
		}
		return nil, storageErr(OpGetActorData, err)
	}
	d.LastOpenAt = fromNullableMillis(lastOpen)
	d.CreatedAt = clock.FromUnixMilli(createdAt)
	d.UpdatedAt = clock.FromUnixMilli(updatedAt)
	return &d, nil
}

func (s *Store) UpsertActorData(ctx context.Context, data *domain.ActorData) error {
	if _, err := s.db.ExecContext(ctx, sqlUpsertActorData, actorArgs(data)...); err != nil {
		return storageErr(OpUpsertActorData, err)
	}
	return nil
}

// UpsertActorDataBatch writes all snapshots in a single transaction
func (s *Store) UpsertActorDataBatch(ctx context.Context, data []domain.ActorData) (err error) {
	if len(data) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(OpUpsertActorDataBatch, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, sqlUpsertActorData)
	if err != nil {
		return storageErr(OpUpsertActorDataBatch, err)
	}
	defer stmt.Close()

	for i := range data {
		if _, err = stmt.ExecContext(ctx, actorArgs(&data[i])...); err != nil {
			return storageErr(OpUpsertActorDataBatch, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return storageErr(OpUpsertActorDataBatch, err)
	}
	return nil
}

func actorArgs(d *domain.ActorData) []any {
	return []any{
		d.ActorID, d.Username, d.TotalOpens, d.CurrencyEarned, d.ItemsReceived, d.RareFinds,
		nullableMillis(d.LastOpenAt), millis(d.CreatedAt), millis(d.UpdatedAt), d.Version,
	}
}
