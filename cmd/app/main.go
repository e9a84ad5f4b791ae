package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/LootCrates_Go/internal/bootstrap"
	"github.com/osse101/LootCrates_Go/internal/config"
	"github.com/osse101/LootCrates_Go/internal/handler"
	"github.com/osse101/LootCrates_Go/internal/host/memory"
	"github.com/osse101/LootCrates_Go/internal/server"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if handler.Version == "dev" {
		handler.Version = cfg.Version
	}
	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Standalone mode runs against the in-memory host; an embedding game server
	// passes its own capabilities to bootstrap.Build instead.
	app, err := bootstrap.Build(ctx, cfg, memory.New().Capabilities())
	if err != nil {
		return err
	}
	app.StartJobs(cfg)

	srv := server.NewServer(server.Options{
		Port:            cfg.Port,
		APIKey:          cfg.APIKey,
		TrustedProxies:  cfg.TrustedProxies,
		MaxRequestBytes: cfg.MaxRequestBytes,
	}, server.Deps{
		Crates:  app.Orchestrator,
		Catalog: app.Registry,
		Actors:  app.Actors,
		Store:   app.Store,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err = <-serverErr:
		if err != nil {
			slog.Error("Server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{Server: srv, App: app})
	return err
}
