// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock interface parameter instead of
// calling time.Now, time.After, or time.Sleep directly. In production,
// Real() provides the standard library behavior. In tests, Fake()
// provides a deterministic clock that advances only when Advance is
// called.
//
// The wiring pattern: add a Clock field to structs that use time, set
// it to clock.Real() in production constructors, and inject a
// FakeClock in tests. When a goroutine calls Sleep or After on a
// FakeClock, it registers a pending waiter; tests call WaitForWaiters
// to block until the expected number of waiters exist, then Advance to
// fire them deterministically. This eliminates the race between timer
// registration and time advancement that plagues tests using
// time.Sleep for synchronization.
package clock

import "time"

// Clock abstracts the time operations Probe uses. Every production
// function that waits on wall-clock time should go through a Clock
// rather than the time package, so that tests can drive deadlines
// deterministically.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time after
	// duration d elapses. Equivalent to time.After. If d <= 0, the
	// channel receives immediately.
	After(d time.Duration) <-chan time.Time

	// Sleep pauses the current goroutine for at least duration d.
	// Equivalent to time.Sleep.
	Sleep(d time.Duration)
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (realClock) Sleep(d time.Duration)                  { time.Sleep(d) }
