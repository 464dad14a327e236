// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proc

import (
	"fmt"
	"sync"
)

// NameService is a name-to-process lookup. The cluster-wide global
// registry and custom registration modules both present this surface.
// WhereIs returns the registered identity, or ok=false when the name
// is not registered.
type NameService interface {
	WhereIs(name string) (id ID, ok bool)
}

// Registry is the local node's registered-name table: a concurrency-safe
// mapping from names to process identities. It implements [NameService].
//
// Registration is first-wins: registering a name that is already taken
// is an error, mirroring the usual registered-name semantics where a
// name must be explicitly released before it can be reused.
type Registry struct {
	mu    sync.RWMutex
	names map[string]ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]ID)}
}

// Register binds name to id. Returns an error if the name is already
// registered or id is the zero identity.
func (r *Registry) Register(name string, id ID) error {
	if name == "" {
		return fmt.Errorf("register: empty name")
	}
	if id.IsZero() {
		return fmt.Errorf("register %q: zero process id", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.names[name]; ok {
		return fmt.Errorf("register %q: already registered as %s", name, existing)
	}
	r.names[name] = id
	return nil
}

// Unregister releases name. Releasing an unregistered name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.names, name)
}

// WhereIs looks up the identity registered under name.
func (r *Registry) WhereIs(name string) (ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.names[name]
	return id, ok
}
