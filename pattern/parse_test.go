// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"reflect"
	"testing"
)

func TestParsePatternSavedForms(t *testing.T) {
	t.Parallel()
	cases := []struct {
		input any
		want  SavedID
	}{
		{3, 3},
		{float64(7), 7},
		{"2", 2},
		{"c", Caller},
		{"x", Exception},
		{"cx", CallerException},
	}
	for _, c := range cases {
		parsed, err := ParsePattern(c.input)
		if err != nil {
			t.Fatalf("ParsePattern(%v): %v", c.input, err)
		}
		canonical, err := parsed.Compile(nil)
		if err != nil {
			t.Fatalf("Compile(%v): %v", c.input, err)
		}
		if canonical.Saved != c.want {
			t.Errorf("ParsePattern(%v): got saved %s, want %s", c.input, canonical.Saved, c.want)
		}
	}
}

func TestParsePatternRejectsBadSavedNumbers(t *testing.T) {
	t.Parallel()
	for _, input := range []any{0, -1, 2.5, float64(-3)} {
		if _, err := ParsePattern(input); err == nil {
			t.Errorf("ParsePattern(%v): expected error", input)
		}
	}
}

// TestParsePatternHeadShapeDispatch pins the load-bearing branch: a
// list whose head is an action shape reads as an action list, a list
// whose head is a clause shape reads as a program, and the two shapes
// never overlap.
func TestParsePatternHeadShapeDispatch(t *testing.T) {
	t.Parallel()

	actionList, err := ParsePattern([]any{"return", map[string]any{"silent": true}})
	if err != nil {
		t.Fatalf("ParsePattern(action list): %v", err)
	}
	canonical, err := actionList.Compile(nil)
	if err != nil {
		t.Fatalf("Compile(action list): %v", err)
	}
	wantActions := FromActions([]Action{Return(), Silent(true)})
	if !reflect.DeepEqual(canonical.Program, wantActions) {
		t.Errorf("action list: got %+v, want %+v", canonical.Program, wantActions)
	}

	clauseList, err := ParsePattern([]any{
		[]any{[]any{"_"}, []any{}, []any{"return"}},
	})
	if err != nil {
		t.Fatalf("ParsePattern(clause list): %v", err)
	}
	canonical, err = clauseList.Compile(nil)
	if err != nil {
		t.Fatalf("Compile(clause list): %v", err)
	}
	wantProgram := Program{{Match: []any{"_"}, Body: []Action{Return()}}}
	if !reflect.DeepEqual(canonical.Program, wantProgram) {
		t.Errorf("clause list: got %+v, want %+v", canonical.Program, wantProgram)
	}
}

func TestParsePatternEmptyList(t *testing.T) {
	t.Parallel()
	parsed, err := ParsePattern([]any{})
	if err != nil {
		t.Fatalf("ParsePattern([]): %v", err)
	}
	if !parsed.IsZero() {
		t.Error("ParsePattern([]): expected the absent pattern")
	}
}

func TestParsePatternStringFallsBackToSource(t *testing.T) {
	t.Parallel()
	parsed, err := ParsePattern(`[{"match": "_", "body": ["return"]}]`)
	if err != nil {
		t.Fatalf("ParsePattern(source string): %v", err)
	}
	canonical, err := parsed.Compile(SourceCompiler{})
	if err != nil {
		t.Fatalf("Compile(source string): %v", err)
	}
	if !reflect.DeepEqual(canonical.Program, FromActions([]Action{Return()})) {
		t.Errorf("source string: got %+v", canonical.Program)
	}
}

func TestParseClauseObjectAndListForms(t *testing.T) {
	t.Parallel()
	object := map[string]any{
		"match": []any{"$1"},
		"guard": []any{[]any{">", "$1", float64(10)}},
		"body":  []any{"caller"},
	}
	list := []any{
		[]any{"$1"},
		[]any{[]any{">", "$1", float64(10)}},
		[]any{"caller"},
	}

	fromObject, err := ParseClause(object)
	if err != nil {
		t.Fatalf("ParseClause(object): %v", err)
	}
	fromList, err := ParseClause(list)
	if err != nil {
		t.Fatalf("ParseClause(list): %v", err)
	}
	if !reflect.DeepEqual(fromObject, fromList) {
		t.Errorf("clause forms disagree: object %+v, list %+v", fromObject, fromList)
	}
	if fromObject.Guard[0].Op != ">" {
		t.Errorf("guard op: got %q, want \">\"", fromObject.Guard[0].Op)
	}
}

func TestParseClauseRejectsMalformed(t *testing.T) {
	t.Parallel()
	malformed := []any{
		"return",
		[]any{[]any{"_"}, []any{}},
		map[string]any{"guard": []any{}},
		map[string]any{"match": "x"},
		map[string]any{"match": []any{"_"}, "extra": true},
	}
	for _, input := range malformed {
		if _, err := ParseClause(input); err != nil {
			continue
		}
		t.Errorf("ParseClause(%v): expected error", input)
	}
}

func TestParseActionRejectsMalformed(t *testing.T) {
	t.Parallel()
	malformed := []any{
		"explode",
		map[string]any{"trace": []any{}},
		map[string]any{"trace": "send"},
		map[string]any{"silent": "yes"},
		map[string]any{"trace": []any{"send"}, "silent": true},
		map[string]any{"detonate": true},
		42,
	}
	for _, input := range malformed {
		if _, err := ParseAction(input); err == nil {
			t.Errorf("ParseAction(%v): expected error", input)
		}
	}
}
