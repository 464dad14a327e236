// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNowAdvances(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)

	if got := c.Now(); !got.Equal(epoch) {
		t.Errorf("Now: got %v, want %v", got, epoch)
	}
	c.Advance(3 * time.Second)
	if got := c.Now(); !got.Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Now after Advance: got %v, want %v", got, epoch.Add(3*time.Second))
	}
}

func TestFakeAfterFiresAtDeadline(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)
	ch := c.After(5 * time.Second)

	c.Advance(4 * time.Second)
	select {
	case <-ch:
		t.Fatal("After fired before its deadline")
	default:
	}

	c.Advance(time.Second)
	select {
	case fired := <-ch:
		if !fired.Equal(epoch.Add(5 * time.Second)) {
			t.Errorf("fire time: got %v, want %v", fired, epoch.Add(5*time.Second))
		}
	default:
		t.Fatal("After did not fire at its deadline")
	}
}

func TestFakeAfterNonPositiveFiresImmediately(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)
	select {
	case <-c.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
}

func TestFakeSleepUnblocksOnAdvance(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)
	done := make(chan struct{})

	go func() {
		c.Sleep(time.Second)
		close(done)
	}()

	c.WaitForWaiters(1)
	c.Advance(time.Second)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Sleep did not unblock after Advance")
	}
}

func TestFakeWaitersFireOnce(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)
	ch := c.After(time.Second)

	c.Advance(time.Second)
	c.Advance(time.Second)

	<-ch
	select {
	case <-ch:
		t.Fatal("waiter fired twice")
	default:
	}
}
