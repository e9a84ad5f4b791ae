package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/LootCrates_Go/internal/bootstrap"
	"github.com/osse101/LootCrates_Go/internal/config"
	"github.com/osse101/LootCrates_Go/internal/database"
	"github.com/osse101/LootCrates_Go/internal/database/sqlite"
)

// MigrateCommand applies the embedded schema to the configured backend and prints its status
type MigrateCommand struct {
	p printer
}

func (c *MigrateCommand) Name() string { return "migrate" }

func (c *MigrateCommand) Usage() string { return "migrate [up|status]" }

func (c *MigrateCommand) Description() string {
	return "Apply pending migrations (up, default) or list their status"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	subcmd := "up"
	if len(args) > 0 {
		subcmd = args[0]
	}
	if subcmd != "up" && subcmd != "status" {
		return fmt.Errorf("unknown subcommand %q: want up or status", subcmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.IsPostgres() {
		return c.postgres(ctx, cfg, subcmd == "up")
	}
	if subcmd == "status" {
		c.p.Warning("sqlite migrations are applied whenever the store opens")
	}
	return c.sqlite(ctx, cfg)
}

func (c *MigrateCommand) sqlite(ctx context.Context, cfg *config.Config) error {
	// opening applies every pending migration
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	s, ok := store.(*sqlite.Store)
	if !ok {
		return errors.New("configured store is not sqlite")
	}
	m, err := database.NewMigrator(database.BackendSQLite, s.DB())
	if err != nil {
		return err
	}
	c.p.Info("sqlite %s", cfg.SQLitePath)
	return c.printStatus(ctx, m)
}

func (c *MigrateCommand) postgres(ctx context.Context, cfg *config.Config, up bool) error {
	pool, err := database.NewPool(ctx, database.PoolConfig{ConnString: cfg.GetDBConnString(), MaxConns: int(cfg.DBMaxConns)})
	if err != nil {
		return err
	}
	defer pool.Close()

	m, db, err := database.NewPostgresMigrator(pool)
	if err != nil {
		return err
	}
	defer db.Close()

	c.p.Info("postgres %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	if up {
		if err := m.Up(ctx); err != nil {
			return err
		}
	}
	return c.printStatus(ctx, m)
}

func (c *MigrateCommand) printStatus(ctx context.Context, m *database.Migrator) error {
	states, err := m.Status(ctx)
	if err != nil {
		return err
	}
	c.p.Header("Migrations")
	pending := 0
	for _, s := range states {
		if s.Applied {
			c.p.Success("%d %s", s.Version, s.Path)
		} else {
			pending++
			c.p.Warning("%d %s (pending)", s.Version, s.Path)
		}
	}
	if pending > 0 {
		return errFailed
	}
	return nil
}
