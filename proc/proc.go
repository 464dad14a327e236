// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proc

import (
	"fmt"
	"strconv"
	"strings"
)

// Node identifies a runtime instance participating in the traced
// cluster (e.g., "node-a"). The empty Node is invalid.
type Node string

// ID is a concrete process identity: the node a process lives on plus
// a serial number unique within that node for the node's lifetime.
// The zero ID is invalid and means "no process".
type ID struct {
	Node   Node   `cbor:"node"`
	Serial uint64 `cbor:"serial"`
}

// IsZero reports whether id is the invalid zero identity.
func (id ID) IsZero() bool {
	return id == ID{}
}

// String renders the identity as "<node>.<serial>".
func (id ID) String() string {
	if id.IsZero() {
		return "<none>"
	}
	return string(id.Node) + "." + strconv.FormatUint(id.Serial, 10)
}

// ParseID parses the "<node>.<serial>" form produced by [ID.String].
// The node part may itself contain dots; the serial is everything after
// the last one.
func ParseID(s string) (ID, error) {
	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return ID{}, fmt.Errorf("malformed process id %q (want \"<node>.<serial>\")", s)
	}
	serial, err := strconv.ParseUint(s[dot+1:], 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("malformed process id %q: %w", s, err)
	}
	return ID{Node: Node(s[:dot]), Serial: serial}, nil
}
