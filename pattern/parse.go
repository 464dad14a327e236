// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"fmt"
	"math"
)

// This file parses patterns from untyped structured data — the shape
// JSON/CBOR decoding produces — for CLI and API boundaries. The parser
// is the single place where the loose external representation is mapped
// onto the closed [Pattern] union; inside the module only typed
// constructors are used.
//
// A list input is ambiguous between an action list and a clause-list
// program. Disambiguation inspects only the shape of the head element:
// an action head (a bare action name, or a single-key object tagged
// trace/clear/silent) selects the action-list reading; anything else is
// read as a program. The two shapes are mutually exclusive by
// construction — an action is never a three-element list — and any new
// action kind must preserve that exclusivity.

// bareActions are the action names accepted as bare strings.
var bareActions = map[string]ActionKind{
	"return":    ActionReturn,
	"exception": ActionException,
	"caller":    ActionCaller,
	"stack":     ActionStack,
}

// ParseAction parses one action from untyped data: a bare action name,
// or a single-key object {"trace": [...]}, {"clear": [...]},
// {"silent": bool}.
func ParseAction(value any) (Action, error) {
	switch v := value.(type) {
	case string:
		kind, ok := bareActions[v]
		if !ok {
			return Action{}, fmt.Errorf("unknown action %q", v)
		}
		return Action{Kind: kind}, nil

	case map[string]any:
		if len(v) != 1 {
			return Action{}, fmt.Errorf("keyed action must have exactly one key, got %d", len(v))
		}
		for key, arg := range v {
			switch key {
			case "trace", "clear":
				flags, err := stringList(arg)
				if err != nil {
					return Action{}, fmt.Errorf("action %q: %w", key, err)
				}
				return Action{Kind: ActionKind(key), Flags: flags}, nil
			case "silent":
				on, ok := arg.(bool)
				if !ok {
					return Action{}, fmt.Errorf("action \"silent\" requires a boolean, got %T", arg)
				}
				return Action{Kind: ActionSilent, On: on}, nil
			default:
				return Action{}, fmt.Errorf("unknown keyed action %q", key)
			}
		}
	}
	return Action{}, fmt.Errorf("action must be a name or a single-key object, got %T", value)
}

// isActionShape reports whether value has the shape of an action head.
// This is the load-bearing disambiguation branch between action lists
// and clause-list programs.
func isActionShape(value any) bool {
	switch v := value.(type) {
	case string:
		_, ok := bareActions[v]
		return ok
	case map[string]any:
		if len(v) != 1 {
			return false
		}
		for key := range v {
			switch key {
			case "trace", "clear", "silent":
				return true
			}
		}
	}
	return false
}

// ParseClause parses one clause from untyped data: either an object
// {"match": [...], "guard": [...], "body": [...]} or a three-element
// list [match, guard, body]. The match may be the bare wildcard "_".
func ParseClause(value any) (Clause, error) {
	switch v := value.(type) {
	case map[string]any:
		for key := range v {
			switch key {
			case "match", "guard", "body":
			default:
				return Clause{}, fmt.Errorf("unknown clause key %q", key)
			}
		}
		if _, ok := v["match"]; !ok {
			return Clause{}, fmt.Errorf("clause object requires a \"match\" key")
		}
		return buildClause(v["match"], v["guard"], v["body"])

	case []any:
		if len(v) != 3 {
			return Clause{}, fmt.Errorf("clause list must have exactly 3 elements [match, guard, body], got %d", len(v))
		}
		return buildClause(v[0], v[1], v[2])
	}
	return Clause{}, fmt.Errorf("clause must be an object or a 3-element list, got %T", value)
}

func buildClause(matchValue, guardValue, bodyValue any) (Clause, error) {
	var clause Clause

	switch m := matchValue.(type) {
	case string:
		if m != Any {
			return Clause{}, fmt.Errorf("match must be a list or the wildcard %q, got %q", Any, m)
		}
		clause.Match = []any{Any}
	case []any:
		if len(m) == 0 {
			return Clause{}, fmt.Errorf("empty match list")
		}
		clause.Match = m
	default:
		return Clause{}, fmt.Errorf("match must be a list or the wildcard %q, got %T", Any, matchValue)
	}

	if guardValue != nil {
		guards, ok := guardValue.([]any)
		if !ok {
			return Clause{}, fmt.Errorf("guard must be a list, got %T", guardValue)
		}
		for _, g := range guards {
			guard, err := parseGuard(g)
			if err != nil {
				return Clause{}, err
			}
			clause.Guard = append(clause.Guard, guard)
		}
	}

	if bodyValue != nil {
		body, ok := bodyValue.([]any)
		if !ok {
			return Clause{}, fmt.Errorf("body must be a list, got %T", bodyValue)
		}
		for _, a := range body {
			action, err := ParseAction(a)
			if err != nil {
				return Clause{}, err
			}
			clause.Body = append(clause.Body, action)
		}
	}
	return clause, nil
}

// parseGuard parses one guard condition: a list whose head is the
// operator name, followed by its arguments.
func parseGuard(value any) (Guard, error) {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return Guard{}, fmt.Errorf("guard condition must be a non-empty list, got %T", value)
	}
	op, ok := list[0].(string)
	if !ok || op == "" {
		return Guard{}, fmt.Errorf("guard operator must be a non-empty string, got %v", list[0])
	}
	return Guard{Op: op, Args: list[1:]}, nil
}

// ParseProgram parses a clause-list program from untyped data.
func ParseProgram(value any) (Program, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("program must be a list of clauses, got %T", value)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("empty filter program")
	}
	program := make(Program, 0, len(list))
	for i, c := range list {
		clause, err := ParseClause(c)
		if err != nil {
			return nil, fmt.Errorf("clause %d: %w", i, err)
		}
		program = append(program, clause)
	}
	return program, nil
}

// ParsePattern parses a full pattern from untyped data:
//
//   - nil or an empty list: the absent pattern
//   - an integer or a saved-id string ("c", "x", "cx", "3"): a saved id
//   - an action, or a list whose head has action shape: an action list
//   - any other string: program source text, compiled later
//   - any other list: a clause-list program
func ParsePattern(value any) (Pattern, error) {
	switch v := value.(type) {
	case nil:
		return Pattern{}, nil

	case int:
		return parseSavedNumber(float64(v))
	case int64:
		return parseSavedNumber(float64(v))
	case uint64:
		return parseSavedNumber(float64(v))
	case float64:
		return parseSavedNumber(v)

	case string:
		if id, err := ParseSavedID(v); err == nil {
			return Saved(id), nil
		}
		if isActionShape(v) {
			action, err := ParseAction(v)
			if err != nil {
				return Pattern{}, err
			}
			return Actions(action), nil
		}
		return Source(v), nil

	case map[string]any:
		action, err := ParseAction(v)
		if err != nil {
			return Pattern{}, err
		}
		return Actions(action), nil

	case []any:
		if len(v) == 0 {
			return Pattern{}, nil
		}
		if isActionShape(v[0]) {
			actions := make([]Action, 0, len(v))
			for i, a := range v {
				action, err := ParseAction(a)
				if err != nil {
					return Pattern{}, fmt.Errorf("action %d: %w", i, err)
				}
				actions = append(actions, action)
			}
			return Actions(actions...), nil
		}
		program, err := ParseProgram(v)
		if err != nil {
			return Pattern{}, err
		}
		return Literal(program), nil
	}
	return Pattern{}, fmt.Errorf("unsupported pattern value of type %T", value)
}

func parseSavedNumber(f float64) (Pattern, error) {
	if f != math.Trunc(f) || f <= 0 {
		return Pattern{}, fmt.Errorf("saved pattern id must be a positive integer, got %v", f)
	}
	return Saved(SavedID(f)), nil
}

func stringList(value any) ([]string, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of strings, got %T", value)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("expected a non-empty list of strings")
	}
	result := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", item)
		}
		result = append(result, s)
	}
	return result, nil
}
