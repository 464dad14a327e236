// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/bureau-foundation/probe/format"
	"github.com/bureau-foundation/probe/tracefile"
)

// InspectFile replays a recorded trace file through the event
// formatter, writing one line per event to device. It runs to the
// end of the stream; a truncated or corrupted file is surfaced as an
// error after the intact prefix has been printed. InspectFile talks
// only to the file, never to the controller, so it works on a
// crashed or reset session.
func InspectFile(device io.Writer, path string) error {
	const op = "inspect_file"

	file, err := os.Open(path)
	if err != nil {
		return opError(op, err, path)
	}
	defer file.Close()

	reader, err := tracefile.NewReader(file)
	if err != nil {
		return opError(op, err, path)
	}

	renderer := format.NewRenderer(device, profileFor(device), format.DefaultTheme)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return opError(op, err, path)
		}
		if _, err := fmt.Fprintln(device, renderer.Render(event)); err != nil {
			return opError(op, err, path)
		}
	}
}

// InspectFile replays a recorded trace file to device. See the
// package-level [InspectFile]; the session method exists so the
// facade surface is complete on one type.
func (s *Session) InspectFile(device io.Writer, path string) error {
	return InspectFile(device, path)
}

// profileFor picks the color profile for a sink: full color on a
// terminal, plain text everywhere else (pipes, files, buffers).
func profileFor(device io.Writer) termenv.Profile {
	type fder interface{ Fd() uintptr }
	if file, ok := device.(fder); ok && term.IsTerminal(int(file.Fd())) {
		return termenv.ANSI256
	}
	return termenv.Ascii
}
