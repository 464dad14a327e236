// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proc

import (
	"context"
	"errors"
	"fmt"
)

// Env is the resolution environment for one node: the local registry,
// the optional cluster-wide name service, the transport to other nodes,
// and the local node's own name. A nil Global or Cluster simply makes
// the corresponding reference forms unresolvable.
type Env struct {
	// Self is the local node's name. NameOn references to Self are
	// resolved locally without touching the cluster transport.
	Self Node

	// Local is the local registered-name table.
	Local *Registry

	// Global is the cluster-wide name service, or nil.
	Global NameService

	// Cluster reaches remote nodes for NameOn lookups, or nil.
	Cluster Cluster
}

// NotFoundError reports that a reference did not resolve to a live
// process. Every resolution failure — unregistered name, unreachable
// node, missing name service — collapses to this error.
type NotFoundError struct {
	// Ref is the reference that failed to resolve.
	Ref Ref
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no process registered for %s", e.Ref)
}

// IsNotFound reports whether err is (or wraps) a resolution failure.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// Resolve maps a process reference to a concrete identity. A concrete
// pid passes through unchanged; every other form is looked up in the
// appropriate name service. See the package documentation for the
// failure-collapsing contract.
func (e *Env) Resolve(ctx context.Context, ref Ref) (ID, error) {
	switch ref.kind {
	case refPid:
		return ref.id, nil

	case refName:
		return e.lookupLocal(ref)

	case refNameOn:
		if ref.node == e.Self {
			return e.lookupLocal(ref)
		}
		if e.Cluster == nil {
			return ID{}, &NotFoundError{Ref: ref}
		}
		id, ok, err := e.Cluster.Lookup(ctx, ref.node, ref.name)
		if err != nil || !ok {
			// A transport failure and an unregistered name are
			// indistinguishable to the caller.
			return ID{}, &NotFoundError{Ref: ref}
		}
		return id, nil

	case refGlobal:
		if e.Global == nil {
			return ID{}, &NotFoundError{Ref: ref}
		}
		id, ok := e.Global.WhereIs(ref.name)
		if !ok {
			return ID{}, &NotFoundError{Ref: ref}
		}
		return id, nil

	case refVia:
		if ref.service == nil {
			return ID{}, &NotFoundError{Ref: ref}
		}
		id, ok := ref.service.WhereIs(ref.name)
		if !ok {
			return ID{}, &NotFoundError{Ref: ref}
		}
		return id, nil

	default:
		return ID{}, &NotFoundError{Ref: ref}
	}
}

func (e *Env) lookupLocal(ref Ref) (ID, error) {
	if e.Local == nil {
		return ID{}, &NotFoundError{Ref: ref}
	}
	id, ok := e.Local.WhereIs(ref.name)
	if !ok {
		return ID{}, &NotFoundError{Ref: ref}
	}
	return id, nil
}
