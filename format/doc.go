// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package format renders trace events for terminals.
//
// A [Renderer] turns one tracefile.Event into a single display line:
// timestamp, owning process, event kind, and a kind-specific body.
// Payload fields are raw CBOR in the trace file; the renderer shows
// them in CBOR diagnostic notation so message contents are readable
// without a separate decode step.
//
// Colors come from a [Theme] of lipgloss ANSI 256-color codes, chosen
// for dark terminals. The renderer is bound to an output writer and a
// termenv color profile at construction; pass termenv.Ascii to get
// plain text for pipes and files.
package format
