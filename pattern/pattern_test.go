// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"reflect"
	"testing"
)

func TestCompileAbsentPattern(t *testing.T) {
	t.Parallel()
	canonical, err := Pattern{}.Compile(SourceCompiler{})
	if err != nil {
		t.Fatalf("Compile(zero): %v", err)
	}
	want := Canonical{Program: FromActions(nil)}
	if !reflect.DeepEqual(canonical, want) {
		t.Errorf("Compile(zero): got %+v, want %+v", canonical, want)
	}
}

func TestCompileSavedPassesThrough(t *testing.T) {
	t.Parallel()
	for _, id := range []SavedID{3, Caller, Exception, CallerException} {
		canonical, err := Saved(id).Compile(nil)
		if err != nil {
			t.Fatalf("Compile(saved %s): %v", id, err)
		}
		if !canonical.BySavedID() || canonical.Saved != id {
			t.Errorf("Compile(saved %s): got %+v", id, canonical)
		}
	}
}

func TestCompileInvalidSavedID(t *testing.T) {
	t.Parallel()
	for _, id := range []SavedID{None, -4, -100} {
		if _, err := Saved(id).Compile(nil); err == nil {
			t.Errorf("Compile(saved %d): expected error", int(id))
		}
	}
}

func TestCompileActionList(t *testing.T) {
	t.Parallel()
	canonical, err := Actions(Return(), Silent(true)).Compile(nil)
	if err != nil {
		t.Fatalf("Compile(actions): %v", err)
	}
	want := Program{{
		Match: []any{Any},
		Body:  []Action{Return(), Silent(true)},
	}}
	if !reflect.DeepEqual(canonical.Program, want) {
		t.Errorf("Compile(actions): got %+v, want %+v", canonical.Program, want)
	}
	if canonical.BySavedID() {
		t.Error("Compile(actions): unexpected saved id")
	}
}

func TestCompileLiteralProgram(t *testing.T) {
	t.Parallel()
	program := Program{{
		Match: []any{"$1", "stop"},
		Guard: []Guard{{Op: ">", Args: []any{"$1", 100}}},
		Body:  []Action{CaptureCaller()},
	}}
	canonical, err := Literal(program).Compile(nil)
	if err != nil {
		t.Fatalf("Compile(literal): %v", err)
	}
	if !reflect.DeepEqual(canonical.Program, program) {
		t.Errorf("Compile(literal): got %+v, want %+v", canonical.Program, program)
	}
}

func TestCompileRejectsMalformedProgram(t *testing.T) {
	t.Parallel()
	malformed := []Program{
		{},
		{{Match: nil}},
		{{Match: []any{Any}, Guard: []Guard{{Op: ""}}}},
		{{Match: []any{Any}, Body: []Action{{Kind: "explode"}}}},
		{{Match: []any{Any}, Body: []Action{{Kind: ActionTrace}}}},
		{{Match: []any{Any}, Body: []Action{{Kind: ActionReturn, Flags: []string{"send"}}}}},
	}
	for i, program := range malformed {
		if _, err := Literal(program).Compile(nil); err == nil {
			t.Errorf("Compile(malformed %d): expected error", i)
		}
	}
}

func TestCompileSource(t *testing.T) {
	t.Parallel()
	source := `[
		// capture returns for every call
		{"match": "_", "body": ["return"]},
	]`
	canonical, err := Source(source).Compile(SourceCompiler{})
	if err != nil {
		t.Fatalf("Compile(source): %v", err)
	}
	want := FromActions([]Action{Return()})
	if !reflect.DeepEqual(canonical.Program, want) {
		t.Errorf("Compile(source): got %+v, want %+v", canonical.Program, want)
	}
}

func TestCompileSourceRequiresCompiler(t *testing.T) {
	t.Parallel()
	if _, err := Source("[]").Compile(nil); err == nil {
		t.Fatal("Compile(source, nil compiler): expected error")
	}
}

func TestCompileTransform(t *testing.T) {
	t.Parallel()
	transform := func(args Args) Program {
		return Program{{
			Match: []any{args.At(0)},
			Guard: []Guard{{Op: "==", Args: []any{args.At(0), "init"}}},
			Body:  []Action{CaptureException()},
		}}
	}
	canonical, err := FromFunc(transform).Compile(SourceCompiler{})
	if err != nil {
		t.Fatalf("Compile(transform): %v", err)
	}
	if got := canonical.Program[0].Match[0]; got != "$1" {
		t.Errorf("transform binding: got %v, want $1", got)
	}
}
