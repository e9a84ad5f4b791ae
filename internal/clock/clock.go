// Package clock abstracts wall time so expiry logic can be driven from tests.
package clock

import (
	"sync"
	"time"
)

// Clock provides an abstraction for time operations
type Clock interface {
	// Now returns the current time
	Now() time.Time
}

// RealClock uses the actual system time
type RealClock struct{}

// NewRealClock creates a new RealClock instance
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// SimulatedClock allows time manipulation for testing.
// It is safe for concurrent use.
type SimulatedClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewSimulatedClock creates a new SimulatedClock starting at the given time
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{
		current: start,
	}
}

// Now returns the simulated current time
func (c *SimulatedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Advance moves the simulated time forward by the given duration
func (c *SimulatedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the simulated time to a specific value
func (c *SimulatedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// UnixMilli converts t to milliseconds since the epoch
func UnixMilli(t time.Time) int64 {
	return t.UnixMilli()
}

// FromUnixMilli converts milliseconds since the epoch to a UTC time
func FromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
