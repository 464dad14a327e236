// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracefile

import (
	"time"

	"github.com/bureau-foundation/probe/lib/codec"
	"github.com/bureau-foundation/probe/proc"
)

// Kind identifies what a traced process was observed doing. The
// values are stored in trace files — changing them breaks existing
// captures.
type Kind string

const (
	// KindSend records a message leaving a traced process. Peer is
	// the destination, Message the payload.
	KindSend Kind = "send"

	// KindReceive records a message arriving at a traced process.
	// Peer is the sender when known, Message the payload.
	KindReceive Kind = "receive"

	// KindCall records entry into a traced function. Module,
	// Function, Arity, and Args describe the call.
	KindCall Kind = "call"

	// KindReturn records a traced function returning. Value carries
	// the return value when return tracing was requested.
	KindReturn Kind = "return"

	// KindException records a traced function unwinding with an
	// error. Reason carries the error text.
	KindException Kind = "exception"

	// KindSpawn records a traced process starting a child. Peer is
	// the child.
	KindSpawn Kind = "spawn"

	// KindExit records a traced process terminating. Reason carries
	// the exit reason.
	KindExit Kind = "exit"

	// KindGC records a garbage collection pass in a traced process.
	KindGC Kind = "gc"
)

// Event is one observation emitted by the tracer. Which fields are
// populated depends on Kind; unset fields are omitted from the
// encoding. Payload-valued fields (Message, Args, Value) are kept as
// raw CBOR so that reading a trace file never forces a full decode of
// values the caller may not look at.
type Event struct {
	// Time is when the tracer observed the event, in the clock of
	// the emitting node.
	Time time.Time `cbor:"time"`

	// Node is the node the event was observed on.
	Node proc.Node `cbor:"node"`

	// Proc is the traced process the event belongs to.
	Proc proc.ID `cbor:"proc"`

	// Kind classifies the event and determines which of the
	// remaining fields are meaningful.
	Kind Kind `cbor:"kind"`

	// Peer is the other process involved, for kinds that have one
	// (send, receive, spawn).
	Peer *proc.ID `cbor:"peer,omitempty"`

	// Message is the raw payload for send and receive events.
	Message codec.RawMessage `cbor:"message,omitempty"`

	// Module, Function, and Arity identify the function for call,
	// return, and exception events.
	Module   string `cbor:"module,omitempty"`
	Function string `cbor:"function,omitempty"`
	Arity    int    `cbor:"arity,omitempty"`

	// Args holds the call arguments for call events, one raw CBOR
	// value per argument.
	Args []codec.RawMessage `cbor:"args,omitempty"`

	// Value is the return value for return events.
	Value codec.RawMessage `cbor:"value,omitempty"`

	// Reason is the error or exit reason for exception and exit
	// events.
	Reason string `cbor:"reason,omitempty"`
}
