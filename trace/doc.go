// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace is the control layer over a distributed runtime
// tracer. Callers express what to trace — which processes, which
// functions, under which conditions — through a small polymorphic
// input vocabulary; the package translates that into the canonical
// commands the tracer runtime understands, and folds the runtime's
// heterogeneous per-node replies into one uniform [Result].
//
// The package is organized around the command flow:
//
//   - flags.go: flag-set normalization (shorthand aliases, dedup)
//   - item.go: trace-target selectors (all / new / existing / process)
//   - target.go: function-target normalization, including Go function
//     values resolved through the runtime symbol table
//   - parse.go: fallible parsers from untyped boundary input
//   - control.go: the controller goroutine and its crash-safe
//     request/reply protocol
//   - session.go: the public facade (Trace, Clear, Call, Cancel,
//     Patterns, Reset, node management)
//   - result.go: per-node reply aggregation
//   - flush.go: best-effort cluster flush fan-out and local drain
//   - inspect.go: recorded trace file replay through the formatter
//   - runtime.go: the external tracer runtime interface
//
// Every facade operation is synchronous: the caller blocks until the
// controller replies or dies. The controller is watched, not trusted —
// requests subscribe to its termination signal before sending, so a
// controller crash (including a panic inside a runtime primitive)
// unblocks every outstanding caller with [ErrControlCrashed] instead
// of hanging them. A crashed controller stays down until [Session.Reset]
// installs a fresh one; operations in between fail fast.
package trace
