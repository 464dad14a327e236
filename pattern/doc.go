// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pattern models the call-filter programs the tracing runtime
// installs on function targets, and the saved-pattern table that makes
// compiled programs reusable.
//
// A filter [Program] is an ordered list of [Clause]s; each clause has an
// argument match, an optional guard, and a body of trace-time [Action]s
// (capture the return value, capture the caller, toggle silence, flip
// trace flags on the traced process). The runtime evaluates clauses in
// order against a call's argument list and applies the body of the first
// clause whose match and guard succeed.
//
// Callers rarely write a Program directly. [Pattern] is the closed union
// of every accepted input form:
//
//   - [Saved]: a previously-installed pattern by id, including the
//     built-in ids [Caller], [Exception], and [CallerException]
//   - [Actions]: a bare action list, compiled into a single
//     wildcard-match clause
//   - [Literal]: an explicit clause-list program
//   - [Source]: program source text, compiled by a [Compiler]
//   - [FromFunc]: a transform function evaluated by the Compiler against
//     a representative argument binding
//   - the zero Pattern: an empty always-true filter with no actions
//
// [Pattern.Compile] normalizes any of these into a [Canonical] command.
//
// Saved programs live in a [Table] keyed by [SavedID]. Entries are
// encoded with [Encode] (versioned CBOR); [Decode] rejects entries that
// were not produced by this encoding convention, which is how foreign
// or corrupt entries get silently skipped when listing.
package pattern
