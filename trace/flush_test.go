// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/bureau-foundation/probe/lib/clock"
	"github.com/bureau-foundation/probe/lib/testutil"
	"github.com/bureau-foundation/probe/proc"
)

func TestFlushWithZeroNodesDrainsLocallyOnly(t *testing.T) {
	t.Parallel()

	runtime := newFakeRuntime()
	session, cluster := newTestSession(t, runtime)

	session.Flush(context.Background())

	if got := runtime.drainCount(); got != 1 {
		t.Errorf("local drains: got %d, want 1", got)
	}
	if flushed := cluster.flushedNodes(); len(flushed) != 0 {
		t.Errorf("fan-out with zero nodes: flushed %v", flushed)
	}
}

func TestFlushFansOutToEveryTracedNode(t *testing.T) {
	t.Parallel()

	runtime := newFakeRuntime()
	session, cluster := newTestSession(t, runtime)
	ctx := context.Background()

	for _, node := range []proc.Node{"node-a", "node-b", "node-c"} {
		if err := session.Node(ctx, node); err != nil {
			t.Fatalf("Node: %v", err)
		}
	}
	// One node failing does not disturb the others or the caller.
	cluster.flushErr = map[proc.Node]error{"node-b": errors.New("unreachable")}

	session.Flush(ctx)

	flushed := cluster.flushedNodes()
	sort.Slice(flushed, func(i, j int) bool { return flushed[i] < flushed[j] })
	if want := []proc.Node{"node-a", "node-b", "node-c"}; len(flushed) != len(want) {
		t.Errorf("fan-out targets: got %v, want %v", flushed, want)
	}
	if got := runtime.drainCount(); got != 1 {
		t.Errorf("local drains: got %d, want 1", got)
	}
}

func TestFlushGatherBoundedByClock(t *testing.T) {
	t.Parallel()

	runtime := newFakeRuntime()
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	session, cluster := newTestSession(t, runtime, WithClock(fake), WithFlushTimeout(time.Second))
	ctx := context.Background()

	if err := session.Node(ctx, "node-a"); err != nil {
		t.Fatalf("Node: %v", err)
	}

	// Park the per-node flush so the gather has to hit its deadline.
	release := make(chan struct{})
	cluster.mu.Lock()
	cluster.blockFlush = release
	cluster.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		session.Flush(ctx)
		close(finished)
	}()

	// Flush registers its gather timer; firing it must complete the
	// flush even though node-a never acknowledged.
	fake.WaitForWaiters(1)
	fake.Advance(time.Second)
	testutil.RequireClosed(t, finished, 5*time.Second, "flush past gather deadline")

	if got := runtime.drainCount(); got != 1 {
		t.Errorf("local drains: got %d, want 1", got)
	}
	close(release)
}

func TestFlushSwallowsDrainPanic(t *testing.T) {
	t.Parallel()

	runtime := newFakeRuntime()
	runtime.drainPanics = true
	session, _ := newTestSession(t, runtime)

	// Must return normally; the panic is the runtime's problem.
	session.Flush(context.Background())
}

func TestFlushAfterCrashSkipsFanOut(t *testing.T) {
	t.Parallel()

	runtime := newFakeRuntime()
	runtime.panicOn = "set_flags"
	session, cluster := newTestSession(t, runtime)
	ctx := context.Background()

	if err := session.Node(ctx, "node-a"); err != nil {
		t.Fatalf("Node: %v", err)
	}
	if _, err := session.Trace(ctx, All(), FlagSend); !errors.Is(err, ErrControlCrashed) {
		t.Fatalf("crashing Trace: got %v", err)
	}

	// Node discovery fails against the dead controller; flush
	// degrades to the local drain.
	session.Flush(ctx)
	if flushed := cluster.flushedNodes(); len(flushed) != 0 {
		t.Errorf("fan-out ran against crashed controller: %v", flushed)
	}
}
