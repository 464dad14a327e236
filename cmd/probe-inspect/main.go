// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/probe/format"
	"github.com/bureau-foundation/probe/lib/codec"
	"github.com/bureau-foundation/probe/lib/config"
	"github.com/bureau-foundation/probe/tracefile"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "probe-inspect: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var colorMode string
	var raw bool
	var outputPath string

	flagSet := pflag.NewFlagSet("probe-inspect", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to probe.yaml (default: $PROBE_CONFIG)")
	flagSet.StringVar(&colorMode, "color", "", "color output: auto, always, or never (default: from config)")
	flagSet.BoolVar(&raw, "raw", false, "print events in CBOR diagnostic notation instead of styled lines")
	flagSet.StringVarP(&outputPath, "output", "o", "", "copy the verified events into this trace file instead of printing them")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		printHelp(flagSet)
		return fmt.Errorf("at least one trace file argument required")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if colorMode == "" {
		colorMode = cfg.Inspect.Color
	}

	profile, err := resolveProfile(colorMode, os.Stdout)
	if err != nil {
		return err
	}

	if outputPath != "" {
		return convert(paths, outputPath, cfg.Inspect.Compression)
	}

	for _, path := range paths {
		if err := inspect(os.Stdout, path, profile, raw, nil); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// convert copies the events of the input captures, in order, into one
// new trace file compressed per the configured algorithm. Useful for
// recompressing a capture or stitching several into one, with the
// integrity digest recomputed over the result.
func convert(paths []string, outputPath string, compression string) error {
	tag, err := tracefile.ParseCompressionTag(compression)
	if err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	writer, err := tracefile.NewWriter(file, tracefile.WithCompression(tag))
	if err != nil {
		file.Close()
		return err
	}

	for _, path := range paths {
		if err := inspect(io.Discard, path, termenv.Ascii, false, writer); err != nil {
			file.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", outputPath, err)
	}
	return file.Close()
}

// loadConfig resolves configuration for the inspect tool. Unlike the
// trace session, inspection works fine without a config file: an
// explicit --config path is loaded, then PROBE_CONFIG if set, and
// otherwise the built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("PROBE_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// resolveProfile maps the color mode to a termenv profile. "auto"
// styles output only when stdout is a terminal.
func resolveProfile(mode string, device *os.File) (termenv.Profile, error) {
	switch mode {
	case "always":
		return termenv.ANSI256, nil
	case "never":
		return termenv.Ascii, nil
	case "auto":
		if term.IsTerminal(int(device.Fd())) {
			return termenv.ANSI256, nil
		}
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("invalid --color mode %q: must be auto, always, or never", mode)
	}
}

// inspect streams one trace file. Events go to output when it is
// non-nil, otherwise they are rendered to device. The intact prefix
// of a damaged file is emitted before the error is reported, so a
// truncated recording still yields its events.
func inspect(device io.Writer, path string, profile termenv.Profile, raw bool, output *tracefile.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader, err := tracefile.NewReader(file)
	if err != nil {
		return err
	}

	renderer := format.NewRenderer(device, profile, format.DefaultTheme)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if output != nil {
			if err := output.Write(event); err != nil {
				return err
			}
			continue
		}

		var line string
		if raw {
			line, err = diagnoseEvent(event)
			if err != nil {
				return err
			}
		} else {
			line = renderer.Render(event)
		}
		if _, err := fmt.Fprintln(device, line); err != nil {
			return err
		}
	}
}

// diagnoseEvent renders an event as RFC 8949 diagnostic notation by
// round-tripping it through the canonical encoding. This shows the
// exact wire shape, including fields the styled renderer elides.
func diagnoseEvent(event tracefile.Event) (string, error) {
	encoded, err := codec.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("encoding event: %w", err)
	}
	return codec.Diagnose(encoded)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Probe trace file inspector — replays recorded trace events.

Reads one or more trace files, verifies their integrity digests, and
prints one line per event. The intact prefix of a truncated or
corrupted file is printed before the error is reported.

Usage:
  probe-inspect [flags] <trace-file>...

Examples:
  # Replay a recording with auto-detected color
  probe-inspect traces/session-1.trace

  # Force plain output for piping
  probe-inspect --color never traces/session-1.trace | grep kvstore

  # Show the exact wire shape of each event
  probe-inspect --raw traces/session-1.trace

  # Recompress a capture (algorithm from inspect.compression)
  probe-inspect --output compact.trace traces/session-1.trace

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
