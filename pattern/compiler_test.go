// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"reflect"
	"testing"
)

func TestCompileSourceClauseListForm(t *testing.T) {
	t.Parallel()
	program, err := SourceCompiler{}.CompileSource(`[[["_"], [], ["return"]]]`)
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}
	want := Program{{Match: []any{"_"}, Body: []Action{Return()}}}
	if !reflect.DeepEqual(program, want) {
		t.Errorf("CompileSource: got %+v, want %+v", program, want)
	}
}

func TestCompileSourceWrappedSingleProgram(t *testing.T) {
	t.Parallel()
	// A list containing exactly one program is unwrapped.
	program, err := SourceCompiler{}.CompileSource(`[[{"match": "_", "body": ["caller"]}]]`)
	if err != nil {
		t.Fatalf("CompileSource(wrapped): %v", err)
	}
	want := Program{{Match: []any{"_"}, Body: []Action{CaptureCaller()}}}
	if !reflect.DeepEqual(program, want) {
		t.Errorf("CompileSource(wrapped): got %+v, want %+v", program, want)
	}
}

func TestCompileSourceRejectsMultiplePrograms(t *testing.T) {
	t.Parallel()
	source := `[
		[{"match": "_", "body": ["return"]}],
		[{"match": "_", "body": ["caller"]}]
	]`
	if _, err := (SourceCompiler{}).CompileSource(source); err == nil {
		t.Fatal("CompileSource(two programs): expected error")
	}
}

func TestCompileSourceRejectsMalformedText(t *testing.T) {
	t.Parallel()
	for _, source := range []string{"", "{", "42", `"return"`, "[]", "{}"} {
		if _, err := (SourceCompiler{}).CompileSource(source); err == nil {
			t.Errorf("CompileSource(%q): expected error", source)
		}
	}
}

func TestCompileTransformNilAndEmpty(t *testing.T) {
	t.Parallel()
	if _, err := (SourceCompiler{}).CompileTransform(nil); err == nil {
		t.Error("CompileTransform(nil): expected error")
	}
	empty := func(args Args) Program { return nil }
	if _, err := (SourceCompiler{}).CompileTransform(empty); err == nil {
		t.Error("CompileTransform(empty): expected error")
	}
}

func TestArgsBindings(t *testing.T) {
	t.Parallel()
	var args Args
	if got := args.Any(); got != Any {
		t.Errorf("Args.Any: got %v, want %q", got, Any)
	}
	if got := args.At(0); got != "$1" {
		t.Errorf("Args.At(0): got %v, want $1", got)
	}
	if got := args.At(2); got != "$3" {
		t.Errorf("Args.At(2): got %v, want $3", got)
	}
}
