// Package sqlite is the embedded single-file storage backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/database"
	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/repository"
)

// Store implements repository.Store on a SQLite file
type Store struct {
	db *sql.DB
}

var _ repository.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies migrations
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(ErrMsgPathRequired)
	}
	db, err := sql.Open("sqlite", filepath.Clean(path)+DSNParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenFailed, err)
	}
	// one writer at a time; WAL keeps readers unblocked
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgPingFailed, err)
	}

	m, err := database.NewMigrator(database.BackendSQLite, db)
	if err == nil {
		err = m.Up(ctx)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the handle for the migrate command
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageErr(OpPing, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}

func millis(t time.Time) int64 {
	return clock.UnixMilli(t)
}

func nullableMillis(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: millis(t), Valid: true}
}

func fromNullableMillis(n sql.NullInt64) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return clock.FromUnixMilli(n.Int64)
}
