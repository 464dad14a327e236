// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package proc defines process identities for the tracing control layer
// and the machinery that resolves heterogeneous process references to
// concrete identities.
//
// A process is addressed by an [ID]: the node it lives on plus a serial
// number unique within that node. Callers rarely hold an ID directly;
// they hold a [Ref], a closed union over the five reference forms the
// control layer accepts:
//
//   - [Pid]: a concrete ID, passed through unchanged
//   - [Name]: a name registered in the local node's [Registry]
//   - [NameOn]: a registered name on a specific node, looked up remotely
//     through the [Cluster] interface when the node is not the local one
//   - [Global]: a name registered in the cluster-wide name service
//   - [Via]: a name resolved by a caller-supplied [NameService]
//
// [Env.Resolve] maps a Ref to an ID. Resolution is a pure lookup: no
// caching (registrations may change between calls) and no side effects.
// Every lookup or communication failure collapses to a [NotFoundError];
// the caller cannot distinguish "unregistered" from "node unreachable",
// matching the advisory nature of name resolution in a live cluster.
package proc
