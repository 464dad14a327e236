// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracefile implements the on-disk trace capture format.
//
// A trace file records the events a tracer emitted while a session was
// active, so they can be inspected after the fact with [Reader] or the
// probe-inspect binary. The format is a short header followed by a
// stream of framed records:
//
//   - file.go: header layout and record framing (1 byte type + 4 byte
//     big-endian payload length)
//   - event.go: the Event payload carried by event records, encoded as
//     deterministic CBOR
//   - compress.go: per-record compression (none, lz4, zstd)
//   - writer.go: buffered append-only writer with an integrity trailer
//   - reader.go: streaming reader with trailer verification
//
// Every byte before the trailer feeds a BLAKE3 keyed hash; the trailer
// record carries the digest so a reader can distinguish a cleanly
// closed file from a truncated or corrupted one. Files without a
// trailer (the writing process died) are still readable up to the
// point of truncation; Reader reports this with ErrTruncated rather
// than failing outright.
package tracefile
