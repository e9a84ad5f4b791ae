package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/osse101/LootCrates_Go/internal/actordata"
	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/config"
	"github.com/osse101/LootCrates_Go/internal/cooldown"
	"github.com/osse101/LootCrates_Go/internal/crate"
	"github.com/osse101/LootCrates_Go/internal/host"
	"github.com/osse101/LootCrates_Go/internal/metrics"
	"github.com/osse101/LootCrates_Go/internal/notify"
	"github.com/osse101/LootCrates_Go/internal/opening"
	"github.com/osse101/LootCrates_Go/internal/pity"
	"github.com/osse101/LootCrates_Go/internal/repository"
	"github.com/osse101/LootCrates_Go/internal/scheduler"
	"github.com/osse101/LootCrates_Go/internal/selection"
	"github.com/osse101/LootCrates_Go/internal/worker"
)

// App is the wired crate engine
type App struct {
	Store        repository.Store
	Pool         *worker.Pool
	Scheduler    *scheduler.Scheduler
	Registry     *crate.Registry
	Pity         *pity.Tracker
	Cooldowns    *cooldown.Tracker
	Actors       *actordata.Store
	Notifier     *notify.Notifier
	Orchestrator *opening.Orchestrator
}

// Build opens storage, restores persisted state, loads crate configuration and
// wires the orchestrator over caps. The write pool is running when Build returns;
// call StartJobs to begin the periodic flush and sweep.
func Build(ctx context.Context, cfg *config.Config, caps host.Capabilities) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app, err := build(ctx, cfg, store, caps, clock.NewRealClock())
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, cfg *config.Config, store repository.Store, caps host.Capabilities, clk clock.Clock) (*App, error) {
	pool := worker.NewPool(cfg.WriteWorkers, cfg.WriteQueueSize)
	pool.Start()

	var pityRepo repository.Pity
	if cfg.PityPersist {
		pityRepo = store
	} else {
		slog.Info(LogMsgPityMemoryOnly)
	}
	pityTracker := pity.NewTracker(pityRepo, pool)
	cooldowns := cooldown.NewTracker(store, pool, clk)

	if _, err := pityTracker.Load(ctx); err != nil {
		pool.Stop()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadState, err)
	}
	if _, err := cooldowns.Load(ctx); err != nil {
		pool.Stop()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadState, err)
	}

	registry, err := LoadCrates(ctx, cfg)
	if err != nil {
		pool.Stop()
		return nil, err
	}

	notifier, err := NewNotifier(cfg)
	if err != nil {
		pool.Stop()
		return nil, err
	}

	if cfg.RNGSeed != 0 {
		slog.Warn(LogMsgFixedSeed, LogFieldSeed, cfg.RNGSeed)
	}

	actors := actordata.NewStore(store, pool, clk)
	orch := opening.New(opening.Deps{
		Registry:     registry,
		Capabilities: caps,
		Pity:         pityTracker,
		Cooldowns:    cooldowns,
		Actors:       actors,
		Queue:        store,
		Notifier:     notifier,
		RNG:          selection.NewRNG(cfg.RNGSeed),
		Clock:        clk,
	})
	orch.AddPostHooks(metrics.NewOpenCollector())
	if cfg.MaintenanceMode {
		slog.Warn(LogMsgMaintenanceOnBoot)
		orch.SetMaintenance(ctx, true)
	}

	return &App{
		Store:        store,
		Pool:         pool,
		Scheduler:    scheduler.New(pool),
		Registry:     registry,
		Pity:         pityTracker,
		Cooldowns:    cooldowns,
		Actors:       actors,
		Notifier:     notifier,
		Orchestrator: orch,
	}, nil
}

// StartJobs schedules the periodic actor flush and cooldown sweep
func (a *App) StartJobs(cfg *config.Config) {
	a.Scheduler.Schedule(JobNameActorFlush, cfg.FlushInterval, worker.JobFunc(a.Actors.FlushJob()))
	a.Scheduler.Schedule(JobNameCooldownSweep, cfg.CooldownSweepInterval, worker.JobFunc(a.Cooldowns.SweepJob()))
}

// LoadCrates builds the registry and performs the initial load of the configured sources.
// Malformed definitions are logged and skipped; an unreadable main file is an error.
func LoadCrates(ctx context.Context, cfg *config.Config) (*crate.Registry, error) {
	parser, err := crate.NewParser()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateParser, err)
	}
	registry := crate.NewRegistry(parser, cfg.CratesConfig, cfg.CratesDir)
	report, err := registry.Reload(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCrates, err)
	}
	for _, cerr := range report.Errors {
		slog.Warn(LogMsgConfigurationProblem, LogFieldError, cerr)
	}
	slog.Info(LogMsgCratesLoaded,
		LogFieldCount, report.Loaded,
		LogFieldErrors, len(report.Errors),
		LogFieldSources, len(report.Sources))
	return registry, nil
}

// NewNotifier loads the message catalog for the configured locale and
// fans messages out to the log and, when configured, a Discord channel
func NewNotifier(cfg *config.Config) (*notify.Notifier, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgInvalidLocale, cfg.Locale, err)
	}
	catalog, err := notify.LoadCatalogFile(cfg.MessagesFile, tag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadMessages, err)
	}

	sinks := notify.FanOut{notify.LogSink{}}
	if cfg.DiscordEnabled() {
		session, err := notify.NewDiscordSession(cfg.DiscordToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscord, err)
		}
		sinks = append(sinks, notify.NewDiscordSink(session, cfg.DiscordChannelID))
		slog.Info(LogMsgDiscordEnabled, LogFieldChannel, cfg.DiscordChannelID)
	}
	return notify.NewNotifier(catalog, sinks), nil
}
