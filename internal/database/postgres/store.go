package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/repository"
)

// Store implements repository.Store on a pgx pool
type Store struct {
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an open pool. The store owns the pool from here on.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return storageErr(OpPing, err)
	}
	return nil
}

// Close releases every pooled connection
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}

// nullableTime maps the zero time to SQL NULL
func nullableTime(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func timeOrZero(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time.UTC()
}
