// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Probe's standard CBOR encoding configuration.
//
// Probe uses two serialization formats with a clear boundary:
//
//   - JSON/JSONC for caller-facing surfaces: pattern source text and
//     CLI output.
//   - CBOR for everything that crosses a process or node boundary or
//     lands on disk: pattern table entries, per-node command replies,
//     and recorded trace file payloads.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every Probe package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes — which is what makes re-encoding a decoded filter program a
// valid equality check in tests.
//
// For buffer-oriented operations (table entries, file records):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (sockets):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// # Struct Tag Rules
//
// The struct tag on a type documents its serialization format:
//
//   - `cbor` tag: this type is ONLY ever serialized as CBOR. Examples:
//     pattern table entries, trace file records, per-node reply
//     envelopes.
//   - `json` tag: this type may be serialized as BOTH JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor` tags
//     are absent, so a single `json` tag controls field naming and
//     omitempty for both formats. Examples: types rendered in CLI
//     --json output.
//
// Never use both `cbor` and `json` tags on the same field. The tag
// choice documents the contract — doubling up is noise that obscures
// whether a type participates in JSON serialization.
package codec
