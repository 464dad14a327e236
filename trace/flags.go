// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"
	"sort"
)

// Flag is one trace category. The canonical values below are what the
// runtime accepts; [NormalizeFlags] maps the shorthand aliases onto
// them.
type Flag string

// Canonical flags, in enumeration order. NormalizeFlags emits flags
// in this order regardless of input order.
const (
	// FlagSend traces messages sent by the process.
	FlagSend Flag = "send"

	// FlagReceive traces messages received by the process.
	FlagReceive Flag = "receive"

	// FlagCall traces function calls matching installed patterns.
	FlagCall Flag = "call"

	// FlagProcs traces process lifecycle events (spawn, exit, link).
	FlagProcs Flag = "procs"

	// FlagRunning traces scheduling in and out.
	FlagRunning Flag = "running"

	// FlagGarbageCollection traces garbage collection passes.
	FlagGarbageCollection Flag = "garbage_collection"

	// FlagTimestamp adds a timestamp to every emitted event.
	FlagTimestamp Flag = "timestamp"

	// FlagArity emits call events with argument count only, not the
	// argument values.
	FlagArity Flag = "arity"

	// FlagReturnTo traces where control returns to after a call.
	FlagReturnTo Flag = "return_to"

	// FlagSilent suppresses event emission while leaving match
	// counting active; pattern actions can toggle it back.
	FlagSilent Flag = "silent"

	// FlagSetOnSpawn propagates the flag set to spawned processes.
	FlagSetOnSpawn Flag = "set_on_spawn"

	// FlagSetOnFirstSpawn propagates to the first spawned process
	// only.
	FlagSetOnFirstSpawn Flag = "set_on_first_spawn"

	// FlagSetOnLink propagates the flag set over links.
	FlagSetOnLink Flag = "set_on_link"

	// FlagSetOnFirstLink propagates over the first link only.
	FlagSetOnFirstLink Flag = "set_on_first_link"

	// FlagAll enables every category above.
	FlagAll Flag = "all"
)

// canonicalOrder fixes the enumeration order of the canonical flags.
// The map values are sort keys for NormalizeFlags output.
var canonicalOrder = map[Flag]int{
	FlagSend:              0,
	FlagReceive:           1,
	FlagCall:              2,
	FlagProcs:             3,
	FlagRunning:           4,
	FlagGarbageCollection: 5,
	FlagTimestamp:         6,
	FlagArity:             7,
	FlagReturnTo:          8,
	FlagSilent:            9,
	FlagSetOnSpawn:        10,
	FlagSetOnFirstSpawn:   11,
	FlagSetOnLink:         12,
	FlagSetOnFirstLink:    13,
	FlagAll:               14,
}

// aliases maps every shorthand to the canonical flags it denotes.
// "m" is the only multi-flag shorthand (messages = send + receive).
var aliases = map[Flag][]Flag{
	"s":    {FlagSend},
	"r":    {FlagReceive},
	"m":    {FlagSend, FlagReceive},
	"c":    {FlagCall},
	"p":    {FlagProcs},
	"ts":   {FlagTimestamp},
	"gc":   {FlagGarbageCollection},
	"sos":  {FlagSetOnSpawn},
	"sofs": {FlagSetOnFirstSpawn},
	"sol":  {FlagSetOnLink},
	"sofl": {FlagSetOnFirstLink},
}

// NormalizeFlags maps flags to their canonical forms, expands
// shorthand aliases, and collapses duplicates into canonical
// enumeration order. An unrecognized flag is a caller error; the
// clear-all sentinel never passes through here (clearing is its own
// command, [Session.Clear]).
//
// Normalization is idempotent: applying it to its own output returns
// the same list.
func NormalizeFlags(flags []Flag) ([]Flag, error) {
	seen := make(map[Flag]bool, len(flags))
	for _, flag := range flags {
		expanded, ok := aliases[flag]
		if !ok {
			if _, canonical := canonicalOrder[flag]; !canonical {
				return nil, &ArgumentError{Input: flag, Reason: "unknown trace flag"}
			}
			expanded = []Flag{flag}
		}
		for _, canonical := range expanded {
			seen[canonical] = true
		}
	}

	normalized := make([]Flag, 0, len(seen))
	for flag := range seen {
		normalized = append(normalized, flag)
	}
	sort.Slice(normalized, func(i, j int) bool {
		return canonicalOrder[normalized[i]] < canonicalOrder[normalized[j]]
	})
	return normalized, nil
}

// ParseFlag parses a single flag string, accepting both canonical and
// shorthand forms. The result is not yet normalized: "m" parses but
// denotes two canonical flags.
func ParseFlag(s string) (Flag, error) {
	flag := Flag(s)
	if _, ok := canonicalOrder[flag]; ok {
		return flag, nil
	}
	if _, ok := aliases[flag]; ok {
		return flag, nil
	}
	return "", fmt.Errorf("unknown trace flag %q", s)
}
