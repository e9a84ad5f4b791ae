// Package pity tracks consecutive non-guaranteed opens and forces a rare outcome at the threshold.
package pity

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/repository"
	"github.com/osse101/LootCrates_Go/internal/selection"
)

// Writer schedules durable writes off the caller's path.
// Writes sharing a key must be applied in submission order.
type Writer interface {
	Submit(table, key string, fn func(ctx context.Context) error) bool
}

// Tracker owns per-actor, per-crate miss counters.
//
// Counters live in memory. When a repository is supplied, every change is also
// persisted in the background and Load restores them at startup.
// Callers serialize operations for the same (actor, crate); different keys never contend.
type Tracker struct {
	repo     repository.Pity
	writer   Writer
	counters sync.Map // key -> *atomic.Int64
}

// NewTracker creates a tracker; a nil repo keeps counters in memory only
func NewTracker(repo repository.Pity, writer Writer) *Tracker {
	return &Tracker{repo: repo, writer: writer}
}

type counterKey struct {
	actorID string
	crateID string
}

func (k counterKey) String() string {
	return k.actorID + "|" + k.crateID
}

func keyFor(actorID, crateID string) counterKey {
	return counterKey{actorID: actorID, crateID: domain.NormalizeCrateID(crateID)}
}

// Persistent reports whether counters survive restarts
func (t *Tracker) Persistent() bool {
	return t.repo != nil
}

// Load restores persisted counters; a no-op for memory-only trackers
func (t *Tracker) Load(ctx context.Context) (int, error) {
	if t.repo == nil {
		return 0, nil
	}
	entries, err := t.repo.LoadPityCounters(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgLoadPityFailed, err)
	}
	for _, e := range entries {
		c := &atomic.Int64{}
		c.Store(int64(e.Count))
		t.counters.Store(keyFor(e.ActorID, e.CrateID), c)
	}
	logger.FromContext(ctx).Info(LogMsgPityLoaded, LogFieldCount, len(entries))
	return len(entries), nil
}

// Get returns the current miss count, 0 if none was recorded
func (t *Tracker) Get(actorID, crateID string) int {
	v, ok := t.counters.Load(keyFor(actorID, crateID))
	if !ok {
		return 0
	}
	return int(v.(*atomic.Int64).Load())
}

// ShouldTrigger reports whether the next open must come from the rare/special pool
func (t *Tracker) ShouldTrigger(actorID string, crate *domain.Crate) bool {
	if crate == nil || !crate.Pity.Enabled {
		return false
	}
	return t.Get(actorID, crate.ID) >= max(1, crate.Pity.Threshold)
}

// Increment adds one miss with saturating arithmetic and returns the new count
func (t *Tracker) Increment(ctx context.Context, actorID, crateID string) int {
	k := keyFor(actorID, crateID)
	v, _ := t.counters.LoadOrStore(k, &atomic.Int64{})
	c := v.(*atomic.Int64)

	var next int64
	for {
		cur := c.Load()
		next = cur
		if cur < math.MaxInt32 {
			next = cur + 1
		}
		if c.CompareAndSwap(cur, next) {
			break
		}
	}

	t.submit(ctx, k, func(ctx context.Context) error {
		return t.repo.UpsertPityCounter(ctx, domain.PityEntry{ActorID: k.actorID, CrateID: k.crateID, Count: int(next)})
	})
	return int(next)
}

// Reset clears the counter
func (t *Tracker) Reset(ctx context.Context, actorID, crateID string) {
	k := keyFor(actorID, crateID)
	t.counters.Delete(k)
	t.submit(ctx, k, func(ctx context.Context) error {
		return t.repo.DeletePityCounter(ctx, k.actorID, k.crateID)
	})
}

// Candidates returns the rewards eligible for a pity roll: rare-or-above tiers and special types
func Candidates(crate *domain.Crate) []*domain.Reward {
	var out []*domain.Reward
	for i := range crate.Rewards {
		if crate.Rewards[i].IsRare() {
			out = append(out, &crate.Rewards[i])
		}
	}
	return out
}

// RollWithPity picks uniformly among the pity candidates.
// Without candidates it logs and falls back to a normal weighted roll.
func RollWithPity(ctx context.Context, crate *domain.Crate, rng selection.RNG) (*domain.Reward, error) {
	candidates := Candidates(crate)
	if len(candidates) == 0 {
		logger.FromContext(ctx).Warn(LogMsgNoPityCandidates, LogFieldCrate, crate.ID)
		return selection.Roll(crate, rng)
	}
	return selection.Uniform(candidates, rng), nil
}

// Select runs the reward step of an open: the pity path when due (then reset),
// otherwise a weighted roll followed by an increment. The bool reports whether pity applied.
func (t *Tracker) Select(ctx context.Context, actorID string, crate *domain.Crate, rng selection.RNG) (*domain.Reward, bool, error) {
	if len(crate.Rewards) == 0 {
		return nil, false, fmt.Errorf("%w: crate %s", domain.ErrEmptyRewardPool, crate.ID)
	}

	if t.ShouldTrigger(actorID, crate) {
		reward, err := RollWithPity(ctx, crate, rng)
		if err != nil {
			return nil, false, err
		}
		t.Reset(ctx, actorID, crate.ID)
		logger.FromContext(ctx).Info(LogMsgPityTriggered, LogFieldActor, actorID, LogFieldCrate, crate.ID)
		return reward, true, nil
	}

	reward, err := selection.Roll(crate, rng)
	if err != nil {
		return nil, false, err
	}
	t.Increment(ctx, actorID, crate.ID)
	return reward, false, nil
}

func (t *Tracker) submit(ctx context.Context, k counterKey, fn func(ctx context.Context) error) {
	if t.repo == nil || t.writer == nil {
		return
	}
	if !t.writer.Submit(TablePityCounters, k.String(), fn) {
		logger.FromContext(ctx).Warn(LogMsgWriteDropped, LogFieldActor, k.actorID, LogFieldCrate, k.crateID)
	}
}
