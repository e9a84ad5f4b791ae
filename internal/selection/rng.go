package selection

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RNG is the randomness source used by every roll.
// IntN returns a uniform integer in [0, n); n is always > 0.
type RNG interface {
	IntN(n int) int
}

// LockedRNG is a seedable source safe for concurrent use
type LockedRNG struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRNG returns a reproducible source for seed, or a time-seeded one when seed is 0
func NewRNG(seed uint64) *LockedRNG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &LockedRNG{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // Game logic randomness, not security critical
}

// IntN implements RNG
func (r *LockedRNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

// FuncRNG adapts a plain function, mostly for tests that script the draws
type FuncRNG func(n int) int

// IntN implements RNG
func (f FuncRNG) IntN(n int) int { return f(n) }

// Sequence replays fixed zero-based draws in order, wrapping around at the end.
// Each draw is reduced modulo n.
func Sequence(draws ...int) RNG {
	var mu sync.Mutex
	i := 0
	return FuncRNG(func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		if len(draws) == 0 {
			return 0
		}
		v := draws[i%len(draws)]
		i++
		return v % n
	})
}
