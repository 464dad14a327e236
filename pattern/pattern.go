// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import "fmt"

// patternKind discriminates the input forms. The zero kind is the
// absent pattern (empty always-true filter).
type patternKind uint8

const (
	patternEmpty patternKind = iota
	patternSaved
	patternActions
	patternProgram
	patternSource
	patternTransform
)

// Pattern is the closed union of accepted pattern inputs. The zero
// Pattern means "no pattern": an empty always-true filter with no
// actions. See the package documentation for the full form catalogue.
type Pattern struct {
	kind      patternKind
	saved     SavedID
	actions   []Action
	program   Program
	source    string
	transform Transform
}

// Saved references a previously-installed program by id.
func Saved(id SavedID) Pattern {
	return Pattern{kind: patternSaved, saved: id}
}

// Actions builds a pattern from a bare action list. A single option
// input is the one-element case of this form.
func Actions(actions ...Action) Pattern {
	return Pattern{kind: patternActions, actions: actions}
}

// Literal builds a pattern from an explicit clause-list program.
func Literal(program Program) Pattern {
	return Pattern{kind: patternProgram, program: program}
}

// Source builds a pattern from program source text, compiled at
// normalization time.
func Source(text string) Pattern {
	return Pattern{kind: patternSource, source: text}
}

// FromFunc builds a pattern from a transform function, evaluated at
// normalization time against a representative argument binding.
func FromFunc(fn Transform) Pattern {
	return Pattern{kind: patternTransform, transform: fn}
}

// IsZero reports whether p is the absent pattern.
func (p Pattern) IsZero() bool { return p.kind == patternEmpty }

// Canonical is the runtime-accepted pattern command: either a saved-id
// reference (Saved != None, Program nil) or a compiled program (Saved
// == None). Exactly one of the two is set.
type Canonical struct {
	Saved   SavedID `cbor:"saved,omitempty"`
	Program Program `cbor:"program,omitempty"`
}

// BySavedID reports whether the command references an existing table
// entry rather than carrying a freshly-compiled program.
func (c Canonical) BySavedID() bool { return c.Saved != None }

// Compile normalizes the pattern into its canonical command form.
// Saved ids pass through unchanged; every other form yields a compiled
// program (which the install path will assign a fresh saved id).
// Malformed input — an invalid saved id, an unparseable source text, a
// structurally unsound program — is reported here, before any runtime
// interaction.
func (p Pattern) Compile(compiler Compiler) (Canonical, error) {
	switch p.kind {
	case patternEmpty:
		return Canonical{Program: FromActions(nil)}, nil

	case patternSaved:
		if !p.saved.Valid() {
			return Canonical{}, fmt.Errorf("invalid saved pattern id %d", int(p.saved))
		}
		return Canonical{Saved: p.saved}, nil

	case patternActions:
		program := FromActions(p.actions)
		if err := program.Validate(); err != nil {
			return Canonical{}, err
		}
		return Canonical{Program: program}, nil

	case patternProgram:
		if err := p.program.Validate(); err != nil {
			return Canonical{}, err
		}
		return Canonical{Program: p.program}, nil

	case patternSource:
		if compiler == nil {
			return Canonical{}, fmt.Errorf("no compiler configured for source patterns")
		}
		program, err := compiler.CompileSource(p.source)
		if err != nil {
			return Canonical{}, fmt.Errorf("compiling pattern source: %w", err)
		}
		if err := program.Validate(); err != nil {
			return Canonical{}, fmt.Errorf("compiled pattern source: %w", err)
		}
		return Canonical{Program: program}, nil

	case patternTransform:
		if compiler == nil {
			return Canonical{}, fmt.Errorf("no compiler configured for transform patterns")
		}
		program, err := compiler.CompileTransform(p.transform)
		if err != nil {
			return Canonical{}, fmt.Errorf("evaluating pattern transform: %w", err)
		}
		if err := program.Validate(); err != nil {
			return Canonical{}, fmt.Errorf("transformed pattern: %w", err)
		}
		return Canonical{Program: program}, nil

	default:
		return Canonical{}, fmt.Errorf("invalid pattern")
	}
}
