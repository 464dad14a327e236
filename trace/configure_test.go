// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/bureau-foundation/probe/lib/config"
	"github.com/bureau-foundation/probe/proc"
)

func TestSessionOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.TraceConfig{
		Nodes:            []string{"node-a", "node-b"},
		FlushTimeout:     2 * time.Second,
		FlushParallelism: 3,
	}

	runtime := newFakeRuntime()
	session := NewSession(runtime, testEnv(newFakeCluster()), SessionOptions(cfg)...)
	t.Cleanup(func() { session.handle().stop() })

	if session.flushTimeout != 2*time.Second {
		t.Errorf("flush timeout: got %v, want 2s", session.flushTimeout)
	}
	if session.flushParallelism != 3 {
		t.Errorf("flush parallelism: got %d, want 3", session.flushParallelism)
	}

	nodes, err := session.Nodes(context.Background())
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if want := []proc.Node{"node-a", "node-b"}; !reflect.DeepEqual(nodes, want) {
		t.Errorf("seeded nodes: got %v, want %v", nodes, want)
	}
}

func TestSessionOptionsZeroConfigKeepsDefaults(t *testing.T) {
	t.Parallel()

	runtime := newFakeRuntime()
	session := NewSession(runtime, testEnv(newFakeCluster()), SessionOptions(config.TraceConfig{})...)
	t.Cleanup(func() { session.handle().stop() })

	if session.flushTimeout != 5*time.Second {
		t.Errorf("flush timeout: got %v, want default 5s", session.flushTimeout)
	}
	if session.flushParallelism != 8 {
		t.Errorf("flush parallelism: got %d, want default 8", session.flushParallelism)
	}
	if nodes, _ := session.Nodes(context.Background()); len(nodes) != 0 {
		t.Errorf("node set: got %v, want empty", nodes)
	}
}
