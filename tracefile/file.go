// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracefile

import (
	"github.com/zeebo/blake3"
)

// Trace file layout:
//
//	[4 bytes magic "PRTF"] [1 byte format version]
//	record*
//	trailer record (optional — absent when the writer died)
//
// Each record is a 5-byte header (1 byte type + 4 byte big-endian
// payload length) followed by the payload.
const (
	// fileMagic identifies a trace file. Readers reject files that
	// do not start with these bytes.
	fileMagic = "PRTF"

	// formatVersion is the current trace file format version.
	// Readers reject files with a version they do not understand.
	formatVersion byte = 1

	// headerLength is the fixed size of the file header: magic plus
	// version byte.
	headerLength = len(fileMagic) + 1
)

// Record type constants.
const (
	// recordEvent carries one compressed CBOR-encoded Event. The
	// payload is a 5-byte record prefix (1 byte compression tag +
	// 4 byte big-endian uncompressed size) followed by the
	// compressed event bytes.
	recordEvent byte = 0x01

	// recordTrailer terminates a cleanly closed file. The payload
	// is the 32-byte BLAKE3 keyed digest of every file byte that
	// precedes this record's header.
	recordTrailer byte = 0x02
)

// recordHeaderLength is the fixed size of a record header: 1 byte
// type + 4 bytes payload length.
const recordHeaderLength = 5

// eventPrefixLength is the fixed size of an event payload prefix:
// 1 byte compression tag + 4 bytes uncompressed size.
const eventPrefixLength = 5

// maxPayloadLength is the maximum allowed record payload size. Trace
// events are small; 16 MB leaves headroom for pathological message
// payloads while bounding allocation on corrupt length fields.
const maxPayloadLength = 16 * 1024 * 1024

// fileDomainKey is the 32-byte key for BLAKE3 keyed hashing of trace
// file contents. Domain separation ensures trace file digests can
// never collide with hashes computed over the same bytes in another
// context. The value is the ASCII encoding of the domain name,
// zero-padded to 32 bytes, so the key is inspectable in hex dumps
// without sacrificing any cryptographic property.
var fileDomainKey = [32]byte{
	'p', 'r', 'o', 'b', 'e', '.', 't', 'r', 'a', 'c', 'e', 'f', 'i', 'l', 'e',
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// newFileHasher returns a BLAKE3 hasher keyed with the trace file
// domain key.
func newFileHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(fileDomainKey[:])
	if err != nil {
		// NewKeyed fails only on wrong key length, and the key is a
		// compile-time constant.
		panic("tracefile: keyed hasher initialization failed: " + err.Error())
	}
	return hasher
}
