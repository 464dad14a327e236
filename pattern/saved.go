// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"fmt"
	"strconv"
)

// SavedID identifies a previously-compiled filter program in the
// pattern table. Positive values are assigned sequentially as programs
// are installed; the three negative built-in ids are always present.
// Zero means "no saved id".
type SavedID int

const (
	// None is the zero SavedID: no reusable program id.
	None SavedID = 0

	// Caller is the built-in program that captures the calling
	// function on every call.
	Caller SavedID = -1

	// Exception is the built-in program that captures returns and
	// exceptions on every call.
	Exception SavedID = -2

	// CallerException combines Caller and Exception.
	CallerException SavedID = -3
)

// Valid reports whether id names a slot in the reserved saved-id
// space: a positive integer or one of the three built-ins.
func (id SavedID) Valid() bool {
	return id > 0 || id == Caller || id == Exception || id == CallerException
}

// Builtin reports whether id is one of the three built-in ids.
func (id SavedID) Builtin() bool {
	return id == Caller || id == Exception || id == CallerException
}

// String renders the id: built-ins by their symbolic names ("c", "x",
// "cx"), assigned ids as decimal integers.
func (id SavedID) String() string {
	switch id {
	case Caller:
		return "c"
	case Exception:
		return "x"
	case CallerException:
		return "cx"
	default:
		return strconv.Itoa(int(id))
	}
}

// ParseSavedID parses the textual forms produced by [SavedID.String].
// Only ids in the reserved space parse successfully.
func ParseSavedID(s string) (SavedID, error) {
	switch s {
	case "c":
		return Caller, nil
	case "x":
		return Exception, nil
	case "cx":
		return CallerException, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || SavedID(n) <= 0 {
		return None, fmt.Errorf("malformed saved pattern id %q", s)
	}
	return SavedID(n), nil
}

// BuiltinProgram returns the program a built-in id denotes, or ok=false
// for any other id.
func BuiltinProgram(id SavedID) (Program, bool) {
	switch id {
	case Caller:
		return FromActions([]Action{CaptureCaller()}), true
	case Exception:
		return FromActions([]Action{CaptureException()}), true
	case CallerException:
		return FromActions([]Action{CaptureCaller(), CaptureException()}), true
	default:
		return nil, false
	}
}
