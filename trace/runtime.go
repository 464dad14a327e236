// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"

	"github.com/bureau-foundation/probe/pattern"
	"github.com/bureau-foundation/probe/proc"
)

// Runtime is the external tracer: the subsystem that actually
// observes processes and emits events. The control layer only issues
// canonical commands against it and aggregates its replies. Command
// methods return one reply per participating node; an error return
// means the command as a whole was rejected.
//
// Implementations are driven from the controller goroutine, so a
// panicking primitive kills the controller — that is deliberate, and
// surfaces to callers as [ErrControlCrashed].
type Runtime interface {
	// SetFlags applies a canonical flag set to the selected
	// processes on every traced node.
	SetFlags(ctx context.Context, item Item, flags []Flag) ([]NodeReply, error)

	// ClearFlags removes all trace flags from the selected
	// processes. This is the clear-all sentinel command; it takes no
	// flag list.
	ClearFlags(ctx context.Context, item Item) ([]NodeReply, error)

	// Install installs a filter pattern on the target. When
	// localCalls is true the filter also fires for module-internal
	// calls, not just cross-module ones.
	Install(ctx context.Context, target Target, canonical pattern.Canonical, localCalls bool) ([]NodeReply, error)

	// Cancel removes any installed filter from the target.
	Cancel(ctx context.Context, target Target) ([]NodeReply, error)

	// AddNode starts mirroring trace commands to a node.
	AddNode(ctx context.Context, node proc.Node) error

	// RemoveNode stops mirroring trace commands to a node.
	RemoveNode(ctx context.Context, node proc.Node) error

	// Drain flushes any local event output buffering. A no-op when
	// no local sink is active.
	Drain(ctx context.Context) error
}

// ReplyKind discriminates per-node reply entries.
type ReplyKind string

const (
	// ReplyMatched reports how many processes or functions the
	// command matched on one node.
	ReplyMatched ReplyKind = "matched"

	// ReplyFailed reports that the command failed on one node. The
	// node matched nothing; Reason says why.
	ReplyFailed ReplyKind = "failed"

	// ReplySaved reports the saved id assigned to a freshly
	// compiled filter program. At most one per command.
	ReplySaved ReplyKind = "saved"
)

// NodeReply is one entry of a per-node reply list. The CBOR tags
// define the wire form replies take between nodes; the control layer
// itself only folds the decoded entries.
type NodeReply struct {
	Kind   ReplyKind       `cbor:"kind"`
	Node   proc.Node       `cbor:"node,omitempty"`
	Count  int             `cbor:"count,omitempty"`
	Reason string          `cbor:"reason,omitempty"`
	Saved  pattern.SavedID `cbor:"saved,omitempty"`
}

// Matched builds a match-count reply entry.
func Matched(node proc.Node, count int) NodeReply {
	return NodeReply{Kind: ReplyMatched, Node: node, Count: count}
}

// Failed builds a per-node failure entry.
func Failed(node proc.Node, reason string) NodeReply {
	return NodeReply{Kind: ReplyFailed, Node: node, Reason: reason}
}

// SavedReply builds a saved-id entry.
func SavedReply(id pattern.SavedID) NodeReply {
	return NodeReply{Kind: ReplySaved, Saved: id}
}
