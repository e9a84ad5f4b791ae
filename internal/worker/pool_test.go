package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/LootCrates_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(job)

	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)

	pool.Stop()

	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPool_StopDrainsQueue(t *testing.T) {
	var executed int32
	pool := NewPool(1, 100)
	pool.Start()

	for i := 0; i < 50; i++ {
		assert.True(t, pool.Submit("test", "k", func(ctx context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		}))
	}
	pool.Stop()

	assert.Equal(t, int32(50), atomic.LoadInt32(&executed))
}

func TestPool_TryEnqueueDropsWhenFull(t *testing.T) {
	pool := NewPool(1, 1)

	// not started: the single slot fills and the next write is dropped
	assert.True(t, pool.Submit("test", "k", func(ctx context.Context) error { return nil }))
	assert.False(t, pool.Submit("test", "k", func(ctx context.Context) error { return nil }))
	assert.Equal(t, 1, pool.Pending())

	pool.Stop()
	assert.Equal(t, 0, pool.Pending())
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()

	assert.False(t, pool.Enqueue(JobFunc(func(ctx context.Context) error { return nil })))
	assert.False(t, pool.Submit("test", "k", func(ctx context.Context) error { return nil }))
	pool.Stop()
}

func TestPool_FailuresAndPanicsDoNotKillWorkers(t *testing.T) {
	var executed int32
	pool := NewPool(1, 10)
	pool.Start()

	pool.Submit("test", "k", func(ctx context.Context) error { return errors.New("boom") })
	pool.Enqueue(JobFunc(func(ctx context.Context) error { panic("kaboom") }))
	pool.Submit("test", "k", func(ctx context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	})
	pool.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_NoGoroutineLeak(t *testing.T) {
	leaktest.Run(t, func() {
		pool := NewPool(4, 10)
		pool.Start()
		for i := 0; i < 10; i++ {
			pool.Submit("test", "k", func(ctx context.Context) error { return nil })
		}
		pool.Stop()
	})
}

func TestPool_SameKeyRunsInSubmissionOrder(t *testing.T) {
	pool := NewPool(4, 64)
	pool.Start()

	var (
		mu  sync.Mutex
		got = map[string][]int{}
	)
	for i := 0; i < 8; i++ {
		for _, key := range []string{"steve|VOTE", "alex|VOTE", "steve|RARE"} {
			assert.True(t, pool.Submit("pity", key, func(ctx context.Context) error {
				if i == 0 {
					// the first write of every key is the slowest
					time.Sleep(20 * time.Millisecond)
				}
				mu.Lock()
				got[key] = append(got[key], i)
				mu.Unlock()
				return nil
			}))
		}
	}
	pool.Stop()

	want := []int{0, 1, 2, 3, 4, 5, 6, 7}
	for _, key := range []string{"steve|VOTE", "alex|VOTE", "steve|RARE"} {
		assert.Equal(t, want, got[key], fmt.Sprintf("writes for %s reordered", key))
	}
}

func TestPool_QueueSizeIsShared(t *testing.T) {
	pool := NewPool(4, 10)
	defer pool.Stop()

	// not started: one key maps to one queue of ceil(10/4) slots
	accepted := 0
	for i := 0; i < 10; i++ {
		if pool.Submit("test", "same", func(ctx context.Context) error { return nil }) {
			accepted++
		}
	}
	assert.Equal(t, 3, accepted)
	assert.Equal(t, 3, pool.Pending())
}
