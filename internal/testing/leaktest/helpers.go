// Package leaktest checks that tests do not leave goroutines behind.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	pollInterval   = 10 * time.Millisecond
	DefaultTimeout = time.Second
)

// Baseline is the goroutine count recorded before a test starts background work
type Baseline struct {
	t     testing.TB
	count int
}

// Snapshot records the current goroutine count
func Snapshot(t testing.TB) *Baseline {
	t.Helper()
	runtime.Gosched()
	return &Baseline{t: t, count: runtime.NumGoroutine()}
}

// Settled fails the test unless the goroutine count drops back to within
// tolerance of the baseline before timeout. Exiting goroutines are given time to finish.
func (b *Baseline) Settled(tolerance int, timeout time.Duration) {
	b.t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		now := runtime.NumGoroutine()
		if now-b.count <= tolerance {
			return
		}
		if time.Now().After(deadline) {
			b.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", b.count, now, tolerance)
			return
		}
		runtime.Gosched()
		time.Sleep(pollInterval)
	}
}

// Run executes fn and requires every goroutine it started to have exited
func Run(t testing.TB, fn func()) {
	t.Helper()
	b := Snapshot(t)
	fn()
	b.Settled(0, DefaultTimeout)
}
