// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// Args is the representative argument binding a [Transform] is
// evaluated against. Its methods mint the placeholder values a
// transform embeds into matches and guards.
type Args struct{}

// Any returns the whole-argument-list wildcard.
func (Args) Any() any { return Any }

// At returns the positional variable for argument i (zero-based),
// usable in both matches and guard arguments.
func (Args) At(i int) any { return fmt.Sprintf("$%d", i+1) }

// Transform derives a filter program from a representative argument
// binding. The compiler evaluates the function exactly once.
type Transform func(args Args) Program

// Compiler turns the indirect pattern forms — source text and
// transform functions — into filter programs. The control layer treats
// compilation as external: implementations may parse any source
// syntax, as long as a successful compilation yields exactly one
// structurally valid program.
type Compiler interface {
	CompileSource(text string) (Program, error)
	CompileTransform(fn Transform) (Program, error)
}

// SourceCompiler is the default [Compiler]. Source text is a JSONC
// document (JSON with comments and trailing commas) holding one filter
// program in either shape accepted by [ParseProgram]:
//
//	[{"match": ["_"], "body": ["return"]}]
//	[[["_"], [], ["return"]]]
//
// A document holding anything other than exactly one program — an
// empty list, a list of several programs — is a compile error.
type SourceCompiler struct{}

// CompileSource parses a JSONC program document.
func (SourceCompiler) CompileSource(text string) (Program, error) {
	var value any
	if err := json.Unmarshal(jsonc.ToJSON([]byte(text)), &value); err != nil {
		return nil, fmt.Errorf("parsing pattern source: %w", err)
	}
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("pattern source must be a non-empty list of clauses")
	}

	// A list whose elements are themselves programs is the multi-program
	// form; it is accepted only when it holds exactly one program.
	if _, err := ParseClause(list[0]); err != nil {
		if len(list) != 1 {
			return nil, fmt.Errorf("pattern source must yield exactly one program, got %d", len(list))
		}
		return ParseProgram(list[0])
	}
	return ParseProgram(value)
}

// CompileTransform evaluates the transform against the representative
// binding.
func (SourceCompiler) CompileTransform(fn Transform) (Program, error) {
	if fn == nil {
		return nil, fmt.Errorf("nil pattern transform")
	}
	program := fn(Args{})
	if len(program) == 0 {
		return nil, fmt.Errorf("pattern transform produced an empty program")
	}
	return program, nil
}
