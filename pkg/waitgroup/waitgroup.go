// Package waitgroup provides a counting barrier for join-style
// synchronization.
//
// Unlike sync.WaitGroup, Add and Done return the new counter value, the
// counter can be preloaded at construction, and Wait is a spin-wait that
// yields the scheduler between checks rather than blocking on a signal.
// The spin is a deliberate simplicity trade-off for low-latency, low-count
// use; it burns CPU while waiting.
package waitgroup

import (
	"runtime"
	"sync/atomic"
)

// WaitGroup is a counting barrier. The zero value is ready to use with a
// counter of zero.
type WaitGroup struct {
	count atomic.Int64
}

// New creates a WaitGroup preloaded with the given counter value.
// Panics if initial is negative.
func New(initial int64) *WaitGroup {
	if initial < 0 {
		panic("waitgroup: negative initial counter")
	}
	wg := &WaitGroup{}
	wg.count.Store(initial)
	return wg
}

// Add atomically increments the counter and returns the new value
func (wg *WaitGroup) Add() int64 {
	return wg.count.Add(1)
}

// Done atomically decrements the counter and returns the new value.
// Panics if the counter goes negative; that always indicates mismatched
// Add/Done calls.
func (wg *WaitGroup) Done() int64 {
	n := wg.count.Add(-1)
	if n < 0 {
		panic("waitgroup: negative counter")
	}
	return n
}

// Count returns the current counter value
func (wg *WaitGroup) Count() int64 {
	return wg.count.Load()
}

// Wait blocks the calling goroutine until the counter reaches zero,
// yielding the scheduler between checks.
func (wg *WaitGroup) Wait() {
	for wg.count.Load() > 0 {
		runtime.Gosched()
	}
}

// Do waits for the counter to reach zero, then invokes fn and returns its
// result. It is a convenience composition over Wait.
func Do[T any](wg *WaitGroup, fn func() T) T {
	wg.Wait()
	return fn()
}
