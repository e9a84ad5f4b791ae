package opening_bench

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"golang.org/x/text/language"

	"github.com/osse101/LootCrates_Go/internal/actordata"
	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/cooldown"
	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/host/memory"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/notify"
	"github.com/osse101/LootCrates_Go/internal/opening"
	"github.com/osse101/LootCrates_Go/internal/pity"
	"github.com/osse101/LootCrates_Go/internal/selection"
)

// --- Stubs (in-memory trackers, no durable writes) ---

type stubRegistry map[string]*domain.Crate

func (r stubRegistry) Get(id string) (*domain.Crate, bool) {
	c, ok := r[domain.NormalizeCrateID(id)]
	return c, ok
}

type discardQueue struct{}

func (discardQueue) EnqueueReward(context.Context, *domain.QueuedReward) (int64, error) { return 1, nil }
func (discardQueue) CountQueuedRewards(context.Context, string) (int, error) { return 0, nil }
func (discardQueue) ListQueuedRewards(context.Context, string) ([]domain.QueuedReward, error) {
	return nil, nil
}

// benchCrate has 50 rewards, 5 of them rare, and a pity threshold that fires regularly
func benchCrate() *domain.Crate {
	c := &domain.Crate{
		ID:         "BENCH",
		Display:    "Bench Crate",
		OpenMethod: domain.OpenMethodEither,
		Enabled:    true,
		DailyLimit: -1,
		Pity:       domain.PityConfig{Enabled: true, Threshold: 10, RareWeightMultiplier: 2},
	}
	for i := 0; i < 50; i++ {
		tier := "common"
		if i%10 == 0 {
			tier = "rare"
		}
		c.Rewards = append(c.Rewards, domain.Reward{
			ID:             fmt.Sprintf("r%02d", i),
			Type:           domain.RewardCurrency,
			Tier:           tier,
			Weight:         1 + i%7,
			CurrencyAmount: float64(10 * (i + 1)),
		})
	}
	return c
}

func newOrchestrator(b *testing.B) *opening.Orchestrator {
	b.Helper()
	logger.InitLoggerWithWriter(logger.Config{Level: "error", Service: "bench"}, io.Discard)

	clk := clock.NewRealClock()
	return opening.New(opening.Deps{
		Registry:     stubRegistry{"BENCH": benchCrate()},
		Capabilities: memory.New().Capabilities(),
		Pity:         pity.NewTracker(nil, nil),
		Cooldowns:    cooldown.NewTracker(nil, nil, clk),
		Actors:       actordata.NewStore(nil, nil, clk),
		Queue:        discardQueue{},
		Notifier:     notify.NewNotifier(notify.NewCatalog(language.English, nil), notify.FanOut{}),
		RNG:          selection.NewRNG(42),
		Clock:        clk,
	})
}

// --- Benchmark Functions ---

// BenchmarkRoll measures weighted selection alone
func BenchmarkRoll(b *testing.B) {
	c := benchCrate()
	rng := selection.NewRNG(42)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := selection.Roll(c, rng); err != nil {
			b.Fatalf("Roll failed: %v", err)
		}
	}
}

// BenchmarkForceOpen_SingleActor measures the full state machine for one actor
func BenchmarkForceOpen_SingleActor(b *testing.B) {
	o := newOrchestrator(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := o.ForceOpen(ctx, "actor-1", "Actor", "bench")
		if err != nil || !res.Succeeded() {
			b.Fatalf("ForceOpen failed: %v", err)
		}
	}
}

// BenchmarkForceOpen_ParallelActors spreads opens over many actors so lock striping is exercised
func BenchmarkForceOpen_ParallelActors(b *testing.B) {
	o := newOrchestrator(b)
	ctx := context.Background()
	var next atomic.Int64

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		actorID := fmt.Sprintf("actor-%d", next.Add(1))
		for pb.Next() {
			if _, err := o.ForceOpen(ctx, actorID, actorID, "bench"); err != nil {
				b.Errorf("ForceOpen failed: %v", err)
				return
			}
		}
	})
}

// BenchmarkForceOpen_SharedActor makes every goroutine contend on one (actor, crate) lock
func BenchmarkForceOpen_SharedActor(b *testing.B) {
	o := newOrchestrator(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := o.ForceOpen(ctx, "actor-1", "Actor", "bench"); err != nil {
				b.Errorf("ForceOpen failed: %v", err)
				return
			}
		}
	})
}
