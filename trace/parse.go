// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"github.com/bureau-foundation/probe/pattern"
	"github.com/bureau-foundation/probe/proc"
)

// Parsers from untyped boundary input (decoded JSON/YAML/CBOR from a
// CLI or API surface) into the closed command types. Typed callers
// construct [Item], [Target], and flag lists directly and never pass
// through here; the parsers exist so loose external representations
// are validated once, at the edge, instead of being interpreted by
// runtime type inspection deeper in.

// ParseFlags parses a flag list from a bare string or a list of
// strings. The result is normalized.
func ParseFlags(value any) ([]Flag, error) {
	var raw []string
	switch v := value.(type) {
	case string:
		raw = []string{v}
	case []string:
		raw = v
	case []any:
		for _, element := range v {
			s, ok := element.(string)
			if !ok {
				return nil, &ArgumentError{Input: element, Reason: "flag must be a string"}
			}
			raw = append(raw, s)
		}
	default:
		return nil, &ArgumentError{Input: value, Reason: "flags must be a string or list of strings"}
	}

	flags := make([]Flag, 0, len(raw))
	for _, s := range raw {
		flag, err := ParseFlag(s)
		if err != nil {
			return nil, &ArgumentError{Input: s, Reason: "unknown trace flag"}
		}
		flags = append(flags, flag)
	}
	return NormalizeFlags(flags)
}

// ParseItem parses a trace-target selector: one of the class selector
// strings ("all", "new", "existing"), a pid string ("node.serial"),
// or a map naming a registered process:
//
//	{"name": "worker"}
//	{"name": "worker", "node": "node-b"}
//	{"global": "scheduler"}
func ParseItem(value any) (Item, error) {
	switch v := value.(type) {
	case string:
		switch v {
		case string(ClassAll):
			return All(), nil
		case string(ClassNew):
			return New(), nil
		case string(ClassExisting):
			return Existing(), nil
		}
		id, err := proc.ParseID(v)
		if err != nil {
			return Item{}, &ArgumentError{Input: v, Reason: "not a class selector or pid"}
		}
		return Process(proc.Pid(id)), nil

	case map[string]any:
		return parseItemMap(v)

	default:
		return Item{}, &ArgumentError{Input: value, Reason: "item must be a string or a map"}
	}
}

func parseItemMap(fields map[string]any) (Item, error) {
	name, hasName := stringField(fields, "name")
	global, hasGlobal := stringField(fields, "global")
	node, hasNode := stringField(fields, "node")

	switch {
	case hasName && hasNode:
		return Process(proc.NameOn(name, proc.Node(node))), nil
	case hasName:
		return Process(proc.Name(name)), nil
	case hasGlobal:
		return Process(proc.Global(global)), nil
	default:
		return Item{}, &ArgumentError{Input: fields, Reason: `item map needs "name" or "global"`}
	}
}

// ParseTarget parses a function target from a bare module string, a
// 1–3 element list [module, function?, arity?], or a map with
// "module"/"function"/"arity" keys. Wildcards are expressed by
// omission.
func ParseTarget(value any) (Target, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return Target{}, &ArgumentError{Input: v, Reason: "empty target module"}
		}
		return ModuleTarget(v), nil

	case []any:
		return parseTargetList(v)

	case map[string]any:
		target := Target{Arity: AnyArity}
		target.Module, _ = stringField(v, "module")
		target.Function, _ = stringField(v, "function")
		if arity, ok := numberField(v, "arity"); ok {
			target.Arity = arity
		}
		if err := target.Validate(); err != nil {
			return Target{}, err
		}
		return target, nil

	default:
		return Target{}, &ArgumentError{Input: value, Reason: "target must be a string, list, or map"}
	}
}

func parseTargetList(elements []any) (Target, error) {
	if len(elements) < 1 || len(elements) > 3 {
		return Target{}, &ArgumentError{Input: elements, Reason: "target list needs 1 to 3 elements"}
	}

	target := Target{Arity: AnyArity}
	module, ok := elements[0].(string)
	if !ok {
		return Target{}, &ArgumentError{Input: elements[0], Reason: "target module must be a string"}
	}
	target.Module = module

	if len(elements) > 1 {
		function, ok := elements[1].(string)
		if !ok {
			return Target{}, &ArgumentError{Input: elements[1], Reason: "target function must be a string"}
		}
		target.Function = function
	}
	if len(elements) > 2 {
		arity, ok := asInt(elements[2])
		if !ok {
			return Target{}, &ArgumentError{Input: elements[2], Reason: "target arity must be an integer"}
		}
		target.Arity = arity
	}

	if err := target.Validate(); err != nil {
		return Target{}, err
	}
	return target, nil
}

// ParsePattern parses a pattern from untyped input. The accepted
// shapes and the option-list versus clause-literal disambiguation
// live in the pattern package.
func ParsePattern(value any) (pattern.Pattern, error) {
	p, err := pattern.ParsePattern(value)
	if err != nil {
		return pattern.Pattern{}, &ArgumentError{Input: value, Reason: err.Error()}
	}
	return p, nil
}

func stringField(fields map[string]any, key string) (string, bool) {
	value, ok := fields[key].(string)
	return value, ok
}

func numberField(fields map[string]any, key string) (int, bool) {
	value, ok := fields[key]
	if !ok {
		return 0, false
	}
	return asInt(value)
}

// asInt accepts the integer representations JSON and CBOR decoders
// produce.
func asInt(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
