package cooldown

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/worker"
)

type fakeRepo struct {
	mu      sync.Mutex
	rows    map[string]domain.CooldownEntry
	loadErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]domain.CooldownEntry)}
}

func (f *fakeRepo) LoadActiveCooldowns(ctx context.Context, now time.Time) ([]domain.CooldownEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	var out []domain.CooldownEntry
	for _, e := range f.rows {
		if e.ExpiresAt.After(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertCooldown(ctx context.Context, e domain.CooldownEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[e.ActorID+":"+e.CrateID] = e
	return nil
}

func (f *fakeRepo) DeleteCooldown(ctx context.Context, actorID, crateID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, actorID+":"+crateID)
	return nil
}

func (f *fakeRepo) DeleteExpiredCooldown(ctx context.Context, actorID, crateID string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := actorID + ":" + crateID
	if e, ok := f.rows[k]; ok && !e.ExpiresAt.After(now) {
		delete(f.rows, k)
	}
	return nil
}

func (f *fakeRepo) DeleteExpiredCooldowns(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, e := range f.rows {
		if !e.ExpiresAt.After(now) {
			delete(f.rows, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) has(actorID, crateID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[actorID+":"+crateID]
	return ok
}

// syncWriter runs writes inline so tests can assert on storage immediately
type syncWriter struct{}

func (syncWriter) Submit(table, key string, fn func(ctx context.Context) error) bool {
	_ = fn(context.Background())
	return true
}

func newTestTracker(t *testing.T) (*Tracker, *fakeRepo, *clock.SimulatedClock) {
	t.Helper()
	clk := clock.NewSimulatedClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	repo := newFakeRepo()
	return NewTracker(repo, syncWriter{}, clk), repo, clk
}

func TestTracker_RoundTrip(t *testing.T) {
	tr, repo, clk := newTestTracker(t)
	ctx := context.Background()

	assert.False(t, tr.HasCooldown(ctx, "actor-1", "ALPHA", false))

	tr.Set(ctx, "actor-1", "ALPHA", 60)
	assert.True(t, tr.HasCooldown(ctx, "actor-1", "ALPHA", false))
	assert.True(t, repo.has("actor-1", "ALPHA"))
	assert.Equal(t, int64(60_000), tr.RemainingMillis("actor-1", "ALPHA"))

	clk.Advance(61 * time.Second)
	assert.False(t, tr.HasCooldown(ctx, "actor-1", "ALPHA", false))

	_, ok := tr.Expiry("actor-1", "ALPHA")
	assert.False(t, ok, "expired entry should be evicted from memory")
	assert.False(t, repo.has("actor-1", "ALPHA"), "expired entry should be evicted from storage")
	assert.Equal(t, int64(0), tr.RemainingMillis("actor-1", "ALPHA"))
}

func TestTracker_ExpiryBoundaryIsInclusive(t *testing.T) {
	tr, _, clk := newTestTracker(t)
	ctx := context.Background()

	tr.Set(ctx, "actor-1", "ALPHA", 10)
	clk.Advance(10 * time.Second)

	assert.False(t, tr.HasCooldown(ctx, "actor-1", "ALPHA", false), "expiry equal to now counts as expired")
}

func TestTracker_BypassAndIsolation(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	tr.Set(ctx, "actor-1", "alpha", 60)

	assert.False(t, tr.HasCooldown(ctx, "actor-1", "ALPHA", true), "bypass ignores cooldowns")
	assert.True(t, tr.HasCooldown(ctx, "actor-1", "Alpha", false), "crate ids are case-insensitive")
	assert.False(t, tr.HasCooldown(ctx, "actor-2", "ALPHA", false))
	assert.False(t, tr.HasCooldown(ctx, "actor-1", "BETA", false))
}

func TestTracker_ZeroDurationIsNoop(t *testing.T) {
	tr, repo, _ := newTestTracker(t)
	ctx := context.Background()

	tr.Set(ctx, "actor-1", "ALPHA", 0)

	assert.False(t, tr.HasCooldown(ctx, "actor-1", "ALPHA", false))
	assert.False(t, repo.has("actor-1", "ALPHA"))
}

func TestTracker_Clear(t *testing.T) {
	tr, repo, _ := newTestTracker(t)
	ctx := context.Background()

	tr.Set(ctx, "actor-1", "ALPHA", 600)
	tr.Clear(ctx, "actor-1", "ALPHA")

	assert.False(t, tr.HasCooldown(ctx, "actor-1", "ALPHA", false))
	assert.False(t, repo.has("actor-1", "ALPHA"))
}

func TestTracker_LoadSkipsExpired(t *testing.T) {
	tr, repo, clk := newTestTracker(t)
	ctx := context.Background()
	now := clk.Now()

	require.NoError(t, repo.UpsertCooldown(ctx, domain.CooldownEntry{ActorID: "a", CrateID: "ALPHA", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repo.UpsertCooldown(ctx, domain.CooldownEntry{ActorID: "b", CrateID: "ALPHA", ExpiresAt: now.Add(-time.Minute)}))

	n, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, tr.HasCooldown(ctx, "a", "ALPHA", false))
	assert.False(t, tr.HasCooldown(ctx, "b", "ALPHA", false))
	assert.True(t, repo.has("b", "ALPHA"), "load does not actively delete expired rows")
}

func TestTracker_LoadError(t *testing.T) {
	tr, repo, _ := newTestTracker(t)
	repo.loadErr = errors.New("connection refused")

	_, err := tr.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestTracker_Sweep(t *testing.T) {
	tr, repo, clk := newTestTracker(t)
	ctx := context.Background()

	tr.Set(ctx, "a", "ALPHA", 10)
	tr.Set(ctx, "b", "ALPHA", 100)
	clk.Advance(30 * time.Second)

	assert.Equal(t, 1, tr.Sweep(ctx))
	assert.Equal(t, 1, tr.Len())
	assert.False(t, repo.has("a", "ALPHA"))
	assert.True(t, repo.has("b", "ALPHA"))
}

func TestTracker_MemoryOnly(t *testing.T) {
	clk := clock.NewSimulatedClock(time.Unix(0, 0))
	tr := NewTracker(nil, nil, clk)
	ctx := context.Background()

	tr.Set(ctx, "a", "ALPHA", 5)
	assert.True(t, tr.HasCooldown(ctx, "a", "ALPHA", false))

	n, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, tr.Sweep(ctx)+tr.Len())
}

func TestTracker_ConcurrentSetAndCheck(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tr.Set(ctx, "actor", "ALPHA", 30)
		}()
		go func() {
			defer wg.Done()
			_ = tr.HasCooldown(ctx, "actor", "ALPHA", false)
		}()
	}
	wg.Wait()

	assert.True(t, tr.HasCooldown(ctx, "actor", "ALPHA", false))
	assert.Equal(t, 1, tr.Len())
}

// stallingRepo holds up the first upsert so a later write could overtake it
type stallingRepo struct {
	*fakeRepo
	upserts atomic.Int32
}

func (r *stallingRepo) UpsertCooldown(ctx context.Context, e domain.CooldownEntry) error {
	if r.upserts.Add(1) == 1 {
		time.Sleep(50 * time.Millisecond)
	}
	return r.fakeRepo.UpsertCooldown(ctx, e)
}

func TestTracker_DurableWritesKeepOrder(t *testing.T) {
	tests := []struct {
		name    string
		steps   func(ctx context.Context, tr *Tracker)
		wantRow bool
	}{
		{
			name: "set then clear",
			steps: func(ctx context.Context, tr *Tracker) {
				tr.Set(ctx, "steve", "VOTE", 60)
				tr.Clear(ctx, "steve", "VOTE")
			},
		},
		{
			name: "set, clear, set again",
			steps: func(ctx context.Context, tr *Tracker) {
				tr.Set(ctx, "steve", "VOTE", 60)
				tr.Clear(ctx, "steve", "VOTE")
				tr.Set(ctx, "steve", "VOTE", 120)
			},
			wantRow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			clk := clock.NewSimulatedClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
			repo := &stallingRepo{fakeRepo: newFakeRepo()}
			pool := worker.NewPool(4, 16)
			pool.Start()

			tr := NewTracker(repo, pool, clk)
			tt.steps(ctx, tr)
			pool.Stop()

			_, inMemory := tr.Expiry("steve", "VOTE")
			assert.Equal(t, tt.wantRow, inMemory)
			assert.Equal(t, tt.wantRow, repo.has("steve", "VOTE"), "storage must match memory after drain")
		})
	}
}
