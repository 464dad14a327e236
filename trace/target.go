// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"reflect"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// AnyArity is the wildcard arity: the target covers every arity of
// the named function.
const AnyArity = -1

// Target identifies the callable surface a filter is installed on: a
// whole module, every arity of one function, or one fully qualified
// function. Function "" and Arity [AnyArity] are the wildcards; a
// concrete arity requires a concrete function.
type Target struct {
	Module   string
	Function string
	Arity    int
}

// ModuleTarget covers every function in a module.
func ModuleTarget(module string) Target {
	return Target{Module: module, Arity: AnyArity}
}

// FunctionTarget covers every arity of one function.
func FunctionTarget(module, function string) Target {
	return Target{Module: module, Function: function, Arity: AnyArity}
}

// ExactTarget covers one fully qualified function.
func ExactTarget(module, function string, arity int) Target {
	return Target{Module: module, Function: function, Arity: arity}
}

// closureName matches the synthetic names the Go runtime gives
// function literals ("pkg.Parent.func1" and nested variants).
var closureName = regexp.MustCompile(`\.func\d+(\.\d+)*$`)

// FuncTarget recovers the fully qualified target for a package-level
// function value. This is the only target form that needs runtime
// support: the function's symbol name supplies the module (import
// path) and function name, and its type supplies the arity.
//
// Only package-level functions have a stable module-qualified
// identity. Closures, method values, and non-function values are
// caller errors, rejected here rather than mis-resolved.
func FuncTarget(fn any) (Target, error) {
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func || value.IsNil() {
		return Target{}, &ArgumentError{Input: fn, Reason: "target must be a function value"}
	}

	symbol := runtime.FuncForPC(value.Pointer())
	if symbol == nil {
		return Target{}, &ArgumentError{Input: fn, Reason: "function has no symbol information"}
	}
	name := symbol.Name()
	if closureName.MatchString(name) {
		return Target{}, &ArgumentError{Input: name, Reason: "closures have no stable qualified name"}
	}

	// Symbol names are "import/path/pkg.Function". The package part
	// may contain dots (domain names); the function part must not
	// (a dot there means a method expression, which binds a receiver
	// type rather than a module-level name).
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return Target{}, &ArgumentError{Input: name, Reason: "function has no package qualifier"}
	}
	module := name[:slash+1+dot]
	function := name[slash+1+dot+1:]
	if function == "" || strings.Contains(function, ".") {
		return Target{}, &ArgumentError{Input: name, Reason: "methods have no stable qualified name"}
	}

	return Target{
		Module:   module,
		Function: function,
		Arity:    value.Type().NumIn(),
	}, nil
}

// Validate checks the wildcard structure: a module is required, and a
// concrete arity is meaningless without a concrete function.
func (t Target) Validate() error {
	if t.Module == "" {
		return &ArgumentError{Input: t, Reason: "target module is required"}
	}
	if t.Function == "" && t.Arity != AnyArity {
		return &ArgumentError{Input: t, Reason: "target arity requires a function"}
	}
	if t.Arity < AnyArity {
		return &ArgumentError{Input: t, Reason: "negative target arity"}
	}
	return nil
}

func (t Target) String() string {
	var b strings.Builder
	b.WriteString(t.Module)
	if t.Function != "" {
		b.WriteByte('.')
		b.WriteString(t.Function)
		if t.Arity != AnyArity {
			b.WriteByte('/')
			b.WriteString(strconv.Itoa(t.Arity))
		}
	}
	return b.String()
}
