package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/LootCrates_Go/internal/database/migrations"
	"github.com/osse101/LootCrates_Go/internal/logger"
)

// MigrationState is one row of a migration status report
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

// Migrator applies the embedded schema for one backend
type Migrator struct {
	provider *goose.Provider
}

// NewMigrator builds a goose provider over db for the given backend
func NewMigrator(backend string, db *sql.DB) (*Migrator, error) {
	var (
		dialect goose.Dialect
		fsys    fs.FS
	)
	switch backend {
	case BackendPostgres:
		dialect, fsys = goose.DialectPostgres, migrations.Postgres()
	case BackendSQLite:
		dialect, fsys = goose.DialectSQLite3, migrations.SQLite()
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, backend)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateMigrator, err)
	}
	return &Migrator{provider: provider}, nil
}

// NewPostgresMigrator exposes a pgx pool to goose through database/sql
func NewPostgresMigrator(pool *pgxpool.Pool) (*Migrator, *sql.DB, error) {
	db := stdlib.OpenDBFromPool(pool)
	m, err := NewMigrator(BackendPostgres, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return m, db, nil
}

// Up applies every pending migration
func (m *Migrator) Up(ctx context.Context) error {
	log := logger.FromContext(ctx)

	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	if len(results) == 0 {
		log.Info(LogMsgMigrationsUpToDate)
		return nil
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied,
			LogFieldVersion, r.Source.Version, LogFieldPath, r.Source.Path, LogFieldDuration, r.Duration)
	}
	return nil
}

// Status lists every known migration and whether it has been applied
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadStatus, err)
	}
	out := make([]MigrationState, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationState{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
