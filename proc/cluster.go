// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proc

import "context"

// Cluster is the remote-invocation surface the control layer uses to
// reach other nodes. It is implemented by the deployment's transport
// (not by this module); the control layer only requires the two calls
// below.
//
// Both calls block until the remote node answers or the transport's own
// timeout machinery gives up; the control layer imposes no additional
// deadline beyond the caller's context.
type Cluster interface {
	// Lookup performs the registered-name lookup on the given remote
	// node, the remote equivalent of [Registry.WhereIs]. Implementations
	// return an error for transport failures; an unregistered name is
	// reported with ok=false and a nil error.
	Lookup(ctx context.Context, node Node, name string) (id ID, ok bool, err error)

	// Flush asks the given node to deliver and flush any pending trace
	// output. Used by the cluster-wide flush broadcast; failures are
	// advisory and the caller ignores them.
	Flush(ctx context.Context, node Node) error
}
