package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/LootCrates_Go/internal/config"
	"github.com/osse101/LootCrates_Go/internal/database"
	"github.com/osse101/LootCrates_Go/internal/database/postgres"
	"github.com/osse101/LootCrates_Go/internal/database/sqlite"
	"github.com/osse101/LootCrates_Go/internal/repository"
)

// OpenStore connects the configured backend and brings its schema up to date
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.IsPostgres() {
		return openPostgres(ctx, cfg)
	}

	if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
		if err := os.MkdirAll(dir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDir, err)
		}
	}
	store, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
	}
	slog.Info(LogMsgStorageReady, LogFieldBackend, database.BackendSQLite, LogFieldFile, cfg.SQLitePath)
	return store, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString: cfg.GetDBConnString(),
		MaxConns:   int(cfg.DBMaxConns),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
	}

	migrator, db, err := database.NewPostgresMigrator(pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	err = migrator.Up(ctx)
	_ = db.Close()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	slog.Info(LogMsgStorageReady, LogFieldBackend, database.BackendPostgres)
	return postgres.NewStore(pool), nil
}
