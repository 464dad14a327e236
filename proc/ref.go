// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proc

import "fmt"

// refKind discriminates the closed set of reference forms. The zero
// kind is invalid so that the zero Ref is detectably empty.
type refKind uint8

const (
	refInvalid refKind = iota
	refPid
	refName
	refNameOn
	refGlobal
	refVia
)

// Ref is a reference to a process in one of the five accepted forms.
// Construct a Ref with [Pid], [Name], [NameOn], [Global], or [Via];
// the zero Ref is invalid and never resolves. Refs are values: they
// are resolved by [Env.Resolve], never stored by the control layer.
type Ref struct {
	kind    refKind
	id      ID
	name    string
	node    Node
	service NameService
}

// Pid references a process by its concrete identity.
func Pid(id ID) Ref {
	return Ref{kind: refPid, id: id}
}

// Name references a process registered under name in the local node's
// registry.
func Name(name string) Ref {
	return Ref{kind: refName, name: name}
}

// NameOn references a process registered under name on the given node.
// When node is the local node this is equivalent to [Name]; otherwise
// resolution performs a blocking remote lookup on that node.
func NameOn(name string, node Node) Ref {
	return Ref{kind: refNameOn, name: name, node: node}
}

// Global references a process registered under name in the cluster-wide
// name service.
func Global(name string) Ref {
	return Ref{kind: refGlobal, name: name}
}

// Via references a process registered under name with a caller-supplied
// name service (a custom registration module).
func Via(service NameService, name string) Ref {
	return Ref{kind: refVia, name: name, service: service}
}

// IsZero reports whether r is the invalid zero reference.
func (r Ref) IsZero() bool {
	return r.kind == refInvalid
}

// String renders the reference for diagnostics. The form mirrors the
// constructor: pid(node.7), name(logger), name(logger)@node-b,
// global(logger), via(logger).
func (r Ref) String() string {
	switch r.kind {
	case refPid:
		return "pid(" + r.id.String() + ")"
	case refName:
		return "name(" + r.name + ")"
	case refNameOn:
		return fmt.Sprintf("name(%s)@%s", r.name, r.node)
	case refGlobal:
		return "global(" + r.name + ")"
	case refVia:
		return "via(" + r.name + ")"
	default:
		return "<invalid ref>"
	}
}
