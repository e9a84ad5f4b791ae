package cooldown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/metrics"
	"github.com/osse101/LootCrates_Go/internal/repository"
)

// Writer schedules durable writes off the caller's path.
// Writes sharing a key must be applied in submission order.
type Writer interface {
	Submit(table, key string, fn func(ctx context.Context) error) bool
}

// Tracker owns per-actor, per-crate cooldown expiries.
//
// The in-memory map is authoritative for the process lifetime: every change is
// visible to the next check immediately, and the matching durable write is
// handed to the Writer. Expired entries are treated as absent and evicted lazily.
type Tracker struct {
	repo   repository.Cooldown
	writer Writer
	clock  clock.Clock

	entries sync.Map // key -> int64 expiry in unix millis
}

// NewTracker creates a tracker; repo and writer may be nil for memory-only use
func NewTracker(repo repository.Cooldown, writer Writer, clk clock.Clock) *Tracker {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Tracker{repo: repo, writer: writer, clock: clk}
}

func key(actorID, crateID string) string {
	return actorID + keySeparator + domain.NormalizeCrateID(crateID)
}

// Load reads every non-expired entry from storage in one bulk query.
// Entries already expired are not loaded; the sweep removes them from storage later.
func (t *Tracker) Load(ctx context.Context) (int, error) {
	if t.repo == nil {
		return 0, nil
	}
	now := t.clock.Now()
	entries, err := t.repo.LoadActiveCooldowns(ctx, now)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgLoadCooldownsFailed, err)
	}

	nowMs := now.UnixMilli()
	loaded := 0
	for _, e := range entries {
		exp := e.ExpiresAt.UnixMilli()
		if exp <= nowMs {
			continue
		}
		t.entries.Store(key(e.ActorID, e.CrateID), exp)
		loaded++
	}
	metrics.CooldownEntries.Set(float64(t.Len()))
	logger.FromContext(ctx).Info(LogMsgCooldownsLoaded, LogFieldCount, loaded)
	return loaded, nil
}

// HasCooldown reports whether the actor must wait before opening the crate again.
// Holders of the bypass capability never have a cooldown.
func (t *Tracker) HasCooldown(ctx context.Context, actorID, crateID string, bypass bool) bool {
	if bypass {
		return false
	}

	k := key(actorID, crateID)
	v, ok := t.entries.Load(k)
	if !ok {
		return false
	}

	expiry := v.(int64)
	if expiry <= t.clock.Now().UnixMilli() {
		t.evict(ctx, k, expiry, actorID, crateID)
		return false
	}
	return true
}

// evict drops an expired entry unless a newer Set replaced it in the meantime
func (t *Tracker) evict(ctx context.Context, k string, expiry int64, actorID, crateID string) {
	if !t.entries.CompareAndDelete(k, expiry) {
		return
	}
	metrics.CooldownEntries.Dec()
	logger.FromContext(ctx).Debug(LogMsgCooldownEvicted, LogFieldActor, actorID, LogFieldCrate, crateID)

	crateID = domain.NormalizeCrateID(crateID)
	now := t.clock.Now()
	t.submit(ctx, actorID, crateID, func(ctx context.Context) error {
		return t.repo.DeleteExpiredCooldown(ctx, actorID, crateID, now)
	})
}

// Expiry returns the stored expiry, if any, without evicting
func (t *Tracker) Expiry(actorID, crateID string) (time.Time, bool) {
	v, ok := t.entries.Load(key(actorID, crateID))
	if !ok {
		return time.Time{}, false
	}
	return clock.FromUnixMilli(v.(int64)), true
}

// RemainingMillis returns how long the actor still has to wait, never negative
func (t *Tracker) RemainingMillis(actorID, crateID string) int64 {
	v, ok := t.entries.Load(key(actorID, crateID))
	if !ok {
		return 0
	}
	return max(0, v.(int64)-t.clock.Now().UnixMilli())
}

// Remaining is RemainingMillis as a Duration
func (t *Tracker) Remaining(actorID, crateID string) time.Duration {
	return time.Duration(t.RemainingMillis(actorID, crateID)) * time.Millisecond
}

// Set starts a cooldown of durationSeconds from now.
// The cache is updated before returning; persistence happens in the background.
func (t *Tracker) Set(ctx context.Context, actorID, crateID string, durationSeconds int64) {
	if durationSeconds <= 0 {
		return
	}
	crateID = domain.NormalizeCrateID(crateID)
	expiry := t.clock.Now().UnixMilli() + durationSeconds*1000

	if _, loaded := t.entries.Swap(key(actorID, crateID), expiry); !loaded {
		metrics.CooldownEntries.Inc()
	}
	logger.FromContext(ctx).Debug(LogMsgCooldownSet, LogFieldActor, actorID, LogFieldCrate, crateID, LogFieldExpires, expiry)

	entry := domain.CooldownEntry{ActorID: actorID, CrateID: crateID, ExpiresAt: clock.FromUnixMilli(expiry)}
	t.submit(ctx, actorID, crateID, func(ctx context.Context) error {
		return t.repo.UpsertCooldown(ctx, entry)
	})
}

// Clear removes a cooldown regardless of its expiry
func (t *Tracker) Clear(ctx context.Context, actorID, crateID string) {
	crateID = domain.NormalizeCrateID(crateID)
	if _, loaded := t.entries.LoadAndDelete(key(actorID, crateID)); loaded {
		metrics.CooldownEntries.Dec()
	}
	t.submit(ctx, actorID, crateID, func(ctx context.Context) error {
		return t.repo.DeleteCooldown(ctx, actorID, crateID)
	})
}

// Sweep removes every expired entry from the cache and from storage.
// It is cleanup only; checks already ignore expired entries.
func (t *Tracker) Sweep(ctx context.Context) int {
	now := t.clock.Now()
	nowMs := now.UnixMilli()

	removed := 0
	t.entries.Range(func(k, v any) bool {
		if v.(int64) <= nowMs && t.entries.CompareAndDelete(k, v) {
			removed++
		}
		return true
	})
	metrics.CooldownEntries.Set(float64(t.Len()))

	if t.repo != nil {
		deleted, err := t.repo.DeleteExpiredCooldowns(ctx, now)
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgSweepDeleteFailed, LogFieldError, err)
		} else {
			logger.FromContext(ctx).Debug(LogMsgCooldownsSwept, LogFieldCount, removed, "rows", deleted)
		}
	}
	return removed
}

// SweepJob adapts Sweep to the worker pool
func (t *Tracker) SweepJob() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		t.Sweep(ctx)
		return nil
	}
}

// Len returns the number of cached entries, expired or not
func (t *Tracker) Len() int {
	n := 0
	t.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (t *Tracker) submit(ctx context.Context, actorID, crateID string, fn func(ctx context.Context) error) {
	if t.repo == nil || t.writer == nil {
		return
	}
	if !t.writer.Submit(TableCooldowns, key(actorID, crateID), fn) {
		logger.FromContext(ctx).Warn(LogMsgWriteDropped, LogFieldActor, actorID, LogFieldCrate, crateID)
	}
}
