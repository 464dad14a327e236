// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Probe-inspect replays recorded trace files as human-readable event
// lines. It reads the framed record format written by the tracefile
// package, verifies the trailing digest, and renders one styled line
// per event. Color is auto-detected from the output device and can be
// forced with --color; --raw prints events in CBOR diagnostic
// notation instead of the styled rendering; --output copies the
// verified events into a new trace file (recompress or stitch
// captures) instead of printing them.
package main
