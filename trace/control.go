// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/bureau-foundation/probe/pattern"
	"github.com/bureau-foundation/probe/proc"
)

// controller is the control process: a goroutine that owns the
// tracer state — the pattern table and the traced node set — and
// serializes every command against the runtime. Callers talk to it
// through [controller.call], which implements the crash-safe
// synchronous protocol: the done channel is the liveness watch, and
// both the send and the reply wait select on it, so a controller
// death (panic in a runtime primitive, or a plain stop) unblocks
// every caller instead of hanging them.
type controller struct {
	runtime Runtime
	logger  *slog.Logger

	// Owned by the run goroutine; never touched from outside.
	table *pattern.Table
	nodes map[proc.Node]struct{}

	requests chan *controlRequest
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// controlRequest is one synchronous exchange. The reply channel is
// buffered so the controller never blocks on a caller that already
// gave up.
type controlRequest struct {
	run   func(c *controller) (any, error)
	reply chan controlReply
}

type controlReply struct {
	value any
	err   error
}

func newController(runtime Runtime, logger *slog.Logger) *controller {
	c := &controller{
		runtime:  runtime,
		logger:   logger,
		table:    pattern.NewTable(),
		nodes:    make(map[proc.Node]struct{}),
		requests: make(chan *controlRequest),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.run()
	return c
}

// run is the controller loop. Commands execute one at a time, in
// arrival order. A panic anywhere in command handling — runtime
// primitives included — is recovered here, logged, and converted
// into controller death: done closes, and the in-flight request
// never receives a reply (its caller observes done instead).
func (c *controller) run() {
	defer close(c.done)
	defer func() {
		if reason := recover(); reason != nil {
			c.logger.Error("trace controller crashed", "reason", reason)
		}
	}()
	for {
		select {
		case request := <-c.requests:
			value, err := request.run(c)
			request.reply <- controlReply{value: value, err: err}
		case <-c.quit:
			return
		}
	}
}

// stop shuts the controller down cleanly. Safe to call repeatedly
// and after a crash.
func (c *controller) stop() {
	c.stopOnce.Do(func() { close(c.quit) })
	<-c.done
}

// call performs one synchronous request. The select on done in both
// phases is the liveness watch from the protocol contract: it is
// armed before the request is sent, so a crash at any point — before
// the send, during handling, before the reply — yields
// [ErrControlCrashed] rather than a hang. Context cancellation
// abandons the wait; the buffered reply channel lets the controller
// complete the command without a receiver.
func (c *controller) call(ctx context.Context, run func(c *controller) (any, error)) (any, error) {
	request := &controlRequest{run: run, reply: make(chan controlReply, 1)}

	select {
	case c.requests <- request:
	case <-c.done:
		return nil, ErrControlCrashed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case reply := <-request.reply:
		return reply.value, reply.err
	case <-c.done:
		return nil, ErrControlCrashed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// commandCall is call for commands whose reply is a per-node list.
func (c *controller) commandCall(ctx context.Context, run func(c *controller) ([]NodeReply, error)) ([]NodeReply, error) {
	value, err := c.call(ctx, func(c *controller) (any, error) { return run(c) })
	if err != nil {
		return nil, err
	}
	return value.([]NodeReply), nil
}

func (c *controller) setFlags(ctx context.Context, item Item, flags []Flag) ([]NodeReply, error) {
	return c.commandCall(ctx, func(c *controller) ([]NodeReply, error) {
		return c.runtime.SetFlags(ctx, item, flags)
	})
}

func (c *controller) clearFlags(ctx context.Context, item Item) ([]NodeReply, error) {
	return c.commandCall(ctx, func(c *controller) ([]NodeReply, error) {
		return c.runtime.ClearFlags(ctx, item)
	})
}

// install installs a filter pattern. A canonical command carrying a
// freshly compiled program (no saved id yet) is stored in the table
// first, and the assigned id is echoed back to the caller as an
// extra saved-id reply entry.
func (c *controller) install(ctx context.Context, target Target, canonical pattern.Canonical, localCalls bool) ([]NodeReply, error) {
	return c.commandCall(ctx, func(c *controller) ([]NodeReply, error) {
		assigned := pattern.None
		if !canonical.BySavedID() {
			encoded, err := pattern.Encode(canonical.Program)
			if err != nil {
				return nil, err
			}
			assigned = c.table.Save(encoded)
			canonical.Saved = assigned
		}
		replies, err := c.runtime.Install(ctx, target, canonical, localCalls)
		if err != nil {
			// The runtime rejected the install; the table must not
			// advertise a program that is active nowhere.
			if assigned != pattern.None {
				c.table.Remove(assigned)
			}
			return nil, err
		}
		if assigned != pattern.None {
			replies = append(replies, SavedReply(assigned))
		}
		return replies, nil
	})
}

func (c *controller) cancel(ctx context.Context, target Target) ([]NodeReply, error) {
	return c.commandCall(ctx, func(c *controller) ([]NodeReply, error) {
		return c.runtime.Cancel(ctx, target)
	})
}

func (c *controller) addNode(ctx context.Context, node proc.Node) error {
	_, err := c.call(ctx, func(c *controller) (any, error) {
		if node == "" {
			return nil, &ArgumentError{Input: node, Reason: "empty node name"}
		}
		if err := c.runtime.AddNode(ctx, node); err != nil {
			return nil, err
		}
		c.nodes[node] = struct{}{}
		return nil, nil
	})
	return err
}

func (c *controller) removeNode(ctx context.Context, node proc.Node) error {
	_, err := c.call(ctx, func(c *controller) (any, error) {
		if _, traced := c.nodes[node]; !traced {
			return nil, &ArgumentError{Input: node, Reason: "node is not traced"}
		}
		if err := c.runtime.RemoveNode(ctx, node); err != nil {
			return nil, err
		}
		delete(c.nodes, node)
		return nil, nil
	})
	return err
}

// nodeList returns the traced node set in stable (sorted) order.
func (c *controller) nodeList(ctx context.Context) ([]proc.Node, error) {
	value, err := c.call(ctx, func(c *controller) (any, error) {
		nodes := make([]proc.Node, 0, len(c.nodes))
		for node := range c.nodes {
			nodes = append(nodes, node)
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
		return nodes, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]proc.Node), nil
}

// tableEntries returns a snapshot of the pattern table's encoded
// entries. This is the "table handle" request of the protocol; the
// snapshot stands in for the handle so callers never touch the table
// concurrently with the controller.
func (c *controller) tableEntries(ctx context.Context) (map[pattern.SavedID][]byte, error) {
	value, err := c.call(ctx, func(c *controller) (any, error) {
		entries := make(map[pattern.SavedID][]byte)
		c.table.Range(func(id pattern.SavedID, encoded []byte) bool {
			entries[id] = encoded
			return true
		})
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(map[pattern.SavedID][]byte), nil
}
