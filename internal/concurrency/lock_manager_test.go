package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SameKeySerializes(t *testing.T) {
	lm := NewLockManager()

	var inside int32
	var maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock("actor:ALPHA")
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInside))
	assert.Equal(t, 0, lm.Size(), "entries should be released once unused")
}

func TestLockManager_DifferentKeysDoNotBlock(t *testing.T) {
	lm := NewLockManager()

	unlockA := lm.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := lm.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestLockManager_UnlockIsIdempotent(t *testing.T) {
	lm := NewLockManager()
	unlock := lm.Lock("k")
	unlock()
	unlock()

	assert.Equal(t, 0, lm.Size())
	relock := lm.Lock("k")
	relock()
}
