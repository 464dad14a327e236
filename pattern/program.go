// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import "fmt"

// Any is the wildcard argument match. A clause whose Match is the
// single-element list [Any] accepts every argument list.
const Any = "_"

// ActionKind discriminates the trace-time side effects a clause body
// can request. The string values are protocol constants: they appear in
// encoded table entries and in program source text.
type ActionKind string

const (
	// ActionTrace enables the listed trace flags on the calling
	// process when the clause matches.
	ActionTrace ActionKind = "trace"

	// ActionClear disables the listed trace flags on the calling
	// process when the clause matches.
	ActionClear ActionKind = "clear"

	// ActionSilent toggles call-event silencing on the calling process.
	ActionSilent ActionKind = "silent"

	// ActionStack captures the calling process's stacktrace in the
	// emitted call event.
	ActionStack ActionKind = "stack"

	// ActionCaller captures the calling function in the emitted call
	// event.
	ActionCaller ActionKind = "caller"

	// ActionReturn emits a matching return event carrying the return
	// value.
	ActionReturn ActionKind = "return"

	// ActionException emits a return event for normal returns and an
	// exception event for abnormal ones.
	ActionException ActionKind = "exception"
)

// Action is one trace-time side effect in a clause body. Flags is only
// meaningful for ActionTrace/ActionClear; On only for ActionSilent.
type Action struct {
	Kind  ActionKind `cbor:"kind"`
	Flags []string   `cbor:"flags,omitempty"`
	On    bool       `cbor:"on,omitempty"`
}

// Return captures the return value of matching calls.
func Return() Action { return Action{Kind: ActionReturn} }

// CaptureException captures the return value or exception of matching
// calls.
func CaptureException() Action { return Action{Kind: ActionException} }

// CaptureCaller records the calling function on matching calls.
func CaptureCaller() Action { return Action{Kind: ActionCaller} }

// Stack records the caller's stacktrace on matching calls.
func Stack() Action { return Action{Kind: ActionStack} }

// Silent toggles call-event silencing on the calling process.
func Silent(on bool) Action { return Action{Kind: ActionSilent, On: on} }

// Trace enables the given trace flags on the calling process.
func Trace(flags ...string) Action { return Action{Kind: ActionTrace, Flags: flags} }

// Clear disables the given trace flags on the calling process.
func Clear(flags ...string) Action { return Action{Kind: ActionClear, Flags: flags} }

// validate checks the action's internal consistency.
func (a Action) validate() error {
	switch a.Kind {
	case ActionTrace, ActionClear:
		if len(a.Flags) == 0 {
			return fmt.Errorf("action %q requires at least one flag", a.Kind)
		}
	case ActionSilent, ActionStack, ActionCaller, ActionReturn, ActionException:
		if len(a.Flags) != 0 {
			return fmt.Errorf("action %q takes no flags", a.Kind)
		}
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}

// Guard is one conjunctive condition on a clause: an operator applied
// to literal arguments and positional variables. The operator
// vocabulary belongs to the runtime's filter engine; this layer carries
// guards opaquely and only checks that an operator is present.
type Guard struct {
	Op   string `cbor:"op"`
	Args []any  `cbor:"args,omitempty"`
}

// Clause is one match/guard/body step of a filter program.
type Clause struct {
	// Match is the argument-list pattern: literals and positional
	// variables, or the single-element wildcard [Any].
	Match []any `cbor:"match"`

	// Guard holds conjunctive conditions; empty means always true.
	Guard []Guard `cbor:"guard,omitempty"`

	// Body lists the trace-time actions applied when the clause fires.
	Body []Action `cbor:"body,omitempty"`
}

// Program is an ordered filter program. The runtime tries clauses in
// order and applies the first that matches.
type Program []Clause

// FromActions wraps a bare action list into the single-clause program
// the normalizer produces for option-list inputs: wildcard match, empty
// guard, body exactly the given actions.
func FromActions(actions []Action) Program {
	return Program{{Match: []any{Any}, Body: actions}}
}

// Validate checks that the program is structurally sound: at least one
// clause, every clause with a non-empty match, every guard with an
// operator, every action well formed.
func (p Program) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("empty filter program")
	}
	for i, clause := range p {
		if len(clause.Match) == 0 {
			return fmt.Errorf("clause %d: empty match", i)
		}
		for _, guard := range clause.Guard {
			if guard.Op == "" {
				return fmt.Errorf("clause %d: guard without operator", i)
			}
		}
		for _, action := range clause.Body {
			if err := action.validate(); err != nil {
				return fmt.Errorf("clause %d: %w", i, err)
			}
		}
	}
	return nil
}
