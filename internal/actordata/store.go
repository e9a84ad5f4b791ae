// Package actordata caches cumulative per-actor crate statistics and persists them in the background.
package actordata

import (
	"context"
	"errors"
	"fmt"
	"sync"

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

// Store owns the actor statistics cache.
//
// The first Get for an actor blocks on storage; later calls are served from memory.
// A record that could not be loaded is served but never written back, so a storage
// outage cannot overwrite durable totals with a fresh zeroed record.
type Store struct {
	repo   repository.ActorData
	writer Writer
	clock  clock.Clock

	entries sync.Map // actorID -> *entry
}

type entry struct {
	ready chan struct{}

	mu       sync.Mutex
	data     domain.ActorData
	degraded bool
}

// NewStore creates a store; writer may be nil to skip background persistence
func NewStore(repo repository.ActorData, writer Writer, clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Store{repo: repo, writer: writer, clock: clk}
}

// Get returns a snapshot of the actor's record, loading or creating it on first use
func (s *Store) Get(ctx context.Context, actorID, usernameHint string) domain.ActorData {
	e := s.entry(ctx, actorID, usernameHint)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data
}

// Peek returns the cached record without touching storage
func (s *Store) Peek(actorID string) (domain.ActorData, bool) {
	v, ok := s.entries.Load(actorID)
	if !ok {
		return domain.ActorData{}, false
	}
	e := v.(*entry)
	select {
	case <-e.ready:
	default:
		return domain.ActorData{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data, true
}

// entry loads the actor at most once; concurrent callers wait for the first load
func (s *Store) entry(ctx context.Context, actorID, usernameHint string) *entry {
	fresh := &entry{ready: make(chan struct{})}
	v, loaded := s.entries.LoadOrStore(actorID, fresh)
	e := v.(*entry)
	if loaded {
		<-e.ready
		return e
	}

	e.data, e.degraded = s.load(ctx, actorID, usernameHint)
	close(e.ready)
	metrics.CachedActors.Inc()
	return e
}

func (s *Store) load(ctx context.Context, actorID, usernameHint string) (domain.ActorData, bool) {
	log := logger.FromContext(ctx)
	now := s.clock.Now()

	if s.repo == nil {
		return *domain.NewActorData(actorID, usernameHint, now), false
	}

	data, err := s.repo.GetActorData(ctx, actorID)
	switch {
	case err == nil:
		if usernameHint != "" {
			data.Username = usernameHint
		}
		return *data, false

	case errors.Is(err, domain.ErrActorNotFound):
		fresh := domain.NewActorData(actorID, usernameHint, now)
		if err := s.repo.UpsertActorData(ctx, fresh); err != nil {
			log.Error(LogMsgActorCreateFail, LogFieldActor, actorID, LogFieldError, err)
		} else {
			log.Debug(LogMsgActorCreated, LogFieldActor, actorID)
		}
		return *fresh, false

	default:
		log.Error(LogMsgActorLoadFailed, LogFieldActor, actorID, LogFieldError, err)
		return *domain.NewActorData(actorID, usernameHint, now), true
	}
}

// RecordOpen folds one completed open into the actor's totals and schedules a save.
// The update and the save of its snapshot happen under the actor's lock.
func (s *Store) RecordOpen(ctx context.Context, actorID, username string, currencyDelta float64, itemCountDelta int, wasRare bool) domain.ActorData {
	e := s.entry(ctx, actorID, username)

	e.mu.Lock()
	defer e.mu.Unlock()

	now := s.clock.Now()
	e.data.TotalOpens++
	e.data.CurrencyEarned += currencyDelta
	e.data.ItemsReceived += int64(itemCountDelta)
	if wasRare {
		e.data.RareFinds++
	}
	if username != "" {
		e.data.Username = username
	}
	e.data.LastOpenAt = now
	e.data.UpdatedAt = now
	e.data.Version++

	snapshot := e.data
	if !e.degraded {
		s.submit(ctx, actorID, func(ctx context.Context) error {
			return s.repo.UpsertActorData(ctx, &snapshot)
		})
	}
	return snapshot
}

// FlushAll writes every cached record synchronously in one batch
func (s *Store) FlushAll(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	batch := s.snapshots()
	if len(batch) == 0 {
		return nil
	}
	if err := s.repo.UpsertActorDataBatch(ctx, batch); err != nil {
		return fmt.Errorf(ErrMsgFlushFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgFlushCompleted, LogFieldCount, len(batch))
	return nil
}

// FlushJob adapts FlushAll to the worker pool
func (s *Store) FlushJob() func(ctx context.Context) error {
	return s.FlushAll
}

// Unload saves the actor's record and drops it from memory
func (s *Store) Unload(ctx context.Context, actorID string) error {
	v, ok := s.entries.LoadAndDelete(actorID)
	if !ok {
		return nil
	}
	metrics.CachedActors.Dec()

	e := v.(*entry)
	<-e.ready
	e.mu.Lock()
	snapshot, degraded := e.data, e.degraded
	e.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgActorUnloaded, LogFieldActor, actorID)
	if s.repo == nil || degraded {
		return nil
	}
	return s.repo.UpsertActorData(ctx, &snapshot)
}

// Len returns the number of cached actors
func (s *Store) Len() int {
	n := 0
	s.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *Store) snapshots() []domain.ActorData {
	var out []domain.ActorData
	s.entries.Range(func(_, v any) bool {
		e := v.(*entry)
		select {
		case <-e.ready:
		default:
			return true
		}
		e.mu.Lock()
		if e.degraded {
			logger.Debug(LogMsgSkipDegradedSave, LogFieldActor, e.data.ActorID)
		} else {
			out = append(out, e.data)
		}
		e.mu.Unlock()
		return true
	})
	return out
}

func (s *Store) submit(ctx context.Context, actorID string, fn func(ctx context.Context) error) {
	if s.repo == nil || s.writer == nil {
		return
	}
	if !s.writer.Submit(TableActorData, actorID, fn) {
		logger.FromContext(ctx).Warn(LogMsgWriteDropped, LogFieldActor, actorID)
	}
}

// LuckRatio is a reporting accessor for rare finds per open
func (s *Store) LuckRatio(ctx context.Context, actorID string) float64 {
	return s.Get(ctx, actorID, "").LuckRatio()
}

// AveragePayout is a reporting accessor for currency earned per open
func (s *Store) AveragePayout(ctx context.Context, actorID string) float64 {
	return s.Get(ctx, actorID, "").AveragePayout()
}
