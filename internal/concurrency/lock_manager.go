package concurrency

import (
	"sync"
)

// LockManager hands out exclusive sections keyed by string.
// Entries are reference counted and dropped once no caller holds or waits on them,
// so the map stays proportional to in-flight work rather than to every key ever seen.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyedLock)}
}

// Lock blocks until the section for key is free and returns its release func.
// Different keys never contend with each other.
func (lm *LockManager) Lock(key string) func() {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyedLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			lm.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(lm.locks, key)
			}
			lm.mu.Unlock()
		})
	}
}

// Size returns the number of keys currently held or waited on
func (lm *LockManager) Size() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
