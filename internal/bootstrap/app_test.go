package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/config"
	"github.com/osse101/LootCrates_Go/internal/database/sqlite"
	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/host/memory"
)

const testCrates = `crates:
  vote:
    display: "&aVote Crate"
    open_method: GUI
    cooldown: 60
    key:
      display: "&aVote Key"
    rewards:
      - id: coins
        type: MONEY
        amount: 250
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cratesFile := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cratesFile, []byte(testCrates), 0o600))

	return &config.Config{
		StorageBackend: config.BackendSQLite,
		SQLitePath:     filepath.Join(dir, "data", "lootcrates.db"),
		CratesConfig:   cratesFile,
		CratesDir:      filepath.Join(dir, "crates"),
		Locale:         "en",
		WriteWorkers:   2,
		WriteQueueSize: 64,
		PityPersist:    true,
		RNGSeed:        1,
	}
}

func buildTestApp(t *testing.T, cfg *config.Config, h *memory.Host, clk clock.Clock) *App {
	t.Helper()
	ctx := context.Background()
	store, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	app, err := build(ctx, cfg, store, h.Capabilities(), clk)
	require.NoError(t, err)
	return app
}

func TestBuild_OpenAndPersistAcrossRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	h := memory.New()
	clk := clock.NewSimulatedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	app := buildTestApp(t, cfg, h, clk)
	assert.Equal(t, 1, app.Registry.Len())

	require.NoError(t, app.Orchestrator.GiveKeys(ctx, "steve", "vote", 2))
	res, err := app.Orchestrator.Open(ctx, domain.OpenRequest{ActorID: "steve", Username: "Steve", CrateID: "vote"})
	require.NoError(t, err)
	assert.Equal(t, domain.StateComplete, res.State)
	assert.InDelta(t, 250.0, h.Balance("steve"), 0.001)

	app.Close(ctx)

	restarted := buildTestApp(t, cfg, h, clk)
	t.Cleanup(func() { restarted.Close(ctx) })

	stats := restarted.Orchestrator.ActorStats(ctx, "steve")
	assert.Equal(t, int64(1), stats.TotalOpens)
	assert.InDelta(t, 250.0, stats.CurrencyEarned, 0.001)

	// the cooldown survived the restart
	_, err = restarted.Orchestrator.Open(ctx, domain.OpenRequest{ActorID: "steve", CrateID: "vote"})
	require.ErrorIs(t, err, domain.ErrOnCooldown)
}

func TestBuild_MaintenanceFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.MaintenanceMode = true

	app := buildTestApp(t, cfg, memory.New(), clock.NewRealClock())
	t.Cleanup(func() { app.Close(ctx) })

	assert.True(t, app.Orchestrator.Maintenance())
}

func TestLoadCrates_MissingMainFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.CratesConfig = filepath.Join(t.TempDir(), "missing.yml")

	_, err := LoadCrates(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedLoadCrates)
}

func TestNewNotifier_InvalidLocale(t *testing.T) {
	cfg := testConfig(t)
	cfg.Locale = "not a locale!"

	_, err := NewNotifier(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidLocale)
}

func TestOpenStore_CreatesDataDir(t *testing.T) {
	cfg := testConfig(t)

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.IsType(t, &sqlite.Store{}, store)
	assert.FileExists(t, cfg.SQLitePath)
}
