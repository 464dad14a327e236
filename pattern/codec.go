// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"fmt"

	"github.com/bureau-foundation/probe/lib/codec"
)

// entryVersion is the table-entry encoding version. Bump only with a
// migration path: Decode rejects every other version, and rejected
// entries are invisible to pattern listings.
const entryVersion = 1

// tableEntry is the CBOR envelope for a stored program. The version
// field doubles as the convention marker that distinguishes entries
// written by this module from entries installed directly through the
// runtime.
type tableEntry struct {
	Version int     `cbor:"v"`
	Program Program `cbor:"program"`
}

// Encode serializes a program into table-entry bytes.
func Encode(program Program) ([]byte, error) {
	if err := program.Validate(); err != nil {
		return nil, err
	}
	return codec.Marshal(tableEntry{Version: entryVersion, Program: program})
}

// Decode deserializes table-entry bytes back into a program. Bytes
// that were not produced by [Encode] — foreign entries, corrupt
// entries, future versions — fail to decode; listings drop such
// entries rather than surfacing the failure.
func Decode(data []byte) (Program, error) {
	var entry tableEntry
	if err := codec.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding table entry: %w", err)
	}
	if entry.Version != entryVersion {
		return nil, fmt.Errorf("table entry version %d, want %d", entry.Version, entryVersion)
	}
	if err := entry.Program.Validate(); err != nil {
		return nil, fmt.Errorf("decoded table entry: %w", err)
	}
	return entry.Program, nil
}
