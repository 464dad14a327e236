// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"github.com/bureau-foundation/probe/pattern"
	"github.com/bureau-foundation/probe/proc"
)

// Result is the aggregated outcome of one command: per-node match
// counts, per-node failures, and the saved id when the command
// compiled a reusable filter program. A node appears in at most one
// of Counts and Errors. Saved is [pattern.None] when no reusable id
// was produced; callers must treat that as absence, not as an id.
//
// Per-node failures are data, not errors: a command that failed on
// some nodes and matched on others still returns normally, with both
// maps populated.
type Result struct {
	Counts map[proc.Node]int
	Errors map[proc.Node]string
	Saved  pattern.SavedID
}

// aggregate folds a per-node reply list into a Result. The fold is
// order-independent: entries are keyed by node, and a failure entry
// evicts any count entry for the same node regardless of which
// arrived first. The last saved-id entry wins, but well-behaved
// runtimes emit at most one.
func aggregate(replies []NodeReply) Result {
	result := Result{
		Counts: make(map[proc.Node]int),
		Errors: make(map[proc.Node]string),
	}
	for _, reply := range replies {
		switch reply.Kind {
		case ReplyMatched:
			if _, failed := result.Errors[reply.Node]; failed {
				continue
			}
			result.Counts[reply.Node] = reply.Count

		case ReplyFailed:
			delete(result.Counts, reply.Node)
			result.Errors[reply.Node] = reply.Reason

		case ReplySaved:
			result.Saved = reply.Saved
		}
	}
	return result
}
