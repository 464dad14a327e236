// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/probe/pattern"
	"github.com/bureau-foundation/probe/proc"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRuntime is a scriptable Runtime. Commands return the
// configured reply list (defaulting to one matched entry for the
// local node) and record their arguments; panicOn names a command
// that panics instead, for controller crash scenarios.
type fakeRuntime struct {
	mu sync.Mutex

	replies []NodeReply
	err     error
	panicOn string

	setFlagsCalls []setFlagsCall
	clearCalls    []Item
	installCalls  []installCall
	cancelCalls   []Target
	addedNodes    []proc.Node
	removedNodes  []proc.Node
	drains        int
	drainErr      error
	drainPanics   bool
}

type setFlagsCall struct {
	item  Item
	flags []Flag
}

type installCall struct {
	target     Target
	canonical  pattern.Canonical
	localCalls bool
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{replies: []NodeReply{Matched("node-local", 1)}}
}

func (f *fakeRuntime) command(op string) ([]NodeReply, error) {
	if f.panicOn == op {
		panic(fmt.Sprintf("fake runtime: %s exploded", op))
	}
	if f.err != nil {
		return nil, f.err
	}
	replies := make([]NodeReply, len(f.replies))
	copy(replies, f.replies)
	return replies, nil
}

func (f *fakeRuntime) SetFlags(ctx context.Context, item Item, flags []Flag) ([]NodeReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setFlagsCalls = append(f.setFlagsCalls, setFlagsCall{item: item, flags: flags})
	return f.command("set_flags")
}

func (f *fakeRuntime) ClearFlags(ctx context.Context, item Item) ([]NodeReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls = append(f.clearCalls, item)
	return f.command("clear_flags")
}

func (f *fakeRuntime) Install(ctx context.Context, target Target, canonical pattern.Canonical, localCalls bool) ([]NodeReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installCalls = append(f.installCalls, installCall{target: target, canonical: canonical, localCalls: localCalls})
	return f.command("install")
}

func (f *fakeRuntime) Cancel(ctx context.Context, target Target) ([]NodeReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls = append(f.cancelCalls, target)
	return f.command("cancel")
}

func (f *fakeRuntime) AddNode(ctx context.Context, node proc.Node) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addedNodes = append(f.addedNodes, node)
	return f.err
}

func (f *fakeRuntime) RemoveNode(ctx context.Context, node proc.Node) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removedNodes = append(f.removedNodes, node)
	return f.err
}

func (f *fakeRuntime) Drain(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.drainPanics {
		panic("fake runtime: drain exploded")
	}
	f.drains++
	return f.drainErr
}

func (f *fakeRuntime) drainCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drains
}

// fakeCluster records flush fan-out targets. Lookup serves remote
// name resolution from a static table; blockFlush, when set, parks
// every Flush call until the channel is closed.
type fakeCluster struct {
	mu         sync.Mutex
	names      map[proc.Node]map[string]proc.ID
	flushErr   map[proc.Node]error
	flushed    []proc.Node
	blockFlush chan struct{}
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{names: make(map[proc.Node]map[string]proc.ID)}
}

func (f *fakeCluster) Lookup(ctx context.Context, node proc.Node, name string) (proc.ID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.names[node][name]
	return id, ok, nil
}

func (f *fakeCluster) Flush(ctx context.Context, node proc.Node) error {
	f.mu.Lock()
	block := f.blockFlush
	f.mu.Unlock()
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushed = append(f.flushed, node)
	return f.flushErr[node]
}

func (f *fakeCluster) flushedNodes() []proc.Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	nodes := make([]proc.Node, len(f.flushed))
	copy(nodes, f.flushed)
	return nodes
}

// testEnv builds a resolver environment with a local registry, the
// fake cluster, and self set to node-local.
func testEnv(cluster *fakeCluster) *proc.Env {
	return &proc.Env{
		Self:    "node-local",
		Local:   proc.NewRegistry(),
		Cluster: cluster,
	}
}
