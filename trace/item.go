// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"github.com/bureau-foundation/probe/proc"
)

// ItemClass discriminates trace-target selectors.
type ItemClass string

const (
	// ClassProcess selects one concrete process.
	ClassProcess ItemClass = "process"

	// ClassAll selects every current and future process.
	ClassAll ItemClass = "all"

	// ClassNew selects only processes spawned after the command.
	ClassNew ItemClass = "new"

	// ClassExisting selects only processes alive at the command.
	ClassExisting ItemClass = "existing"
)

// Item selects what a flag-setting command applies to: a class of
// processes or a single process reference. Items are arguments, never
// state — the facade resolves the Ref form to a concrete pid before
// the command reaches the runtime.
type Item struct {
	Class ItemClass
	Ref   proc.Ref // set only when Class == ClassProcess
}

// All selects every current and future process.
func All() Item { return Item{Class: ClassAll} }

// New selects processes spawned after the command takes effect.
func New() Item { return Item{Class: ClassNew} }

// Existing selects processes alive when the command takes effect.
func Existing() Item { return Item{Class: ClassExisting} }

// Process selects the single process the reference resolves to.
func Process(ref proc.Ref) Item { return Item{Class: ClassProcess, Ref: ref} }

func (i Item) String() string {
	if i.Class == ClassProcess {
		return i.Ref.String()
	}
	return string(i.Class)
}
