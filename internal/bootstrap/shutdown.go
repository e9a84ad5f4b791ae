package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/LootCrates_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	App    *App
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduled jobs
// 3. Write pool drain
// 4. Actor data flush, after every queued write so nothing older lands on top
// 5. Storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, LogFieldError, err)
		}
	}

	if app := components.App; app != nil {
		app.Close(ctx)
	}

	slog.Info(LogMsgServerStopped)
}

// Close stops the jobs and releases storage once every pending write and cached actor is saved
func (a *App) Close(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	slog.Info(LogMsgDrainingWrites, LogFieldPending, a.Pool.Pending())
	a.Pool.Stop()

	slog.Info(LogMsgFlushingActorData)
	if err := a.Actors.FlushAll(ctx); err != nil {
		slog.Error(LogMsgActorFlushFailed, LogFieldError, err)
	}

	if err := a.Store.Close(); err != nil {
		slog.Error(LogMsgStoreCloseFailed, LogFieldError, err)
	}
}
