// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/probe/tracefile"
)

// Theme defines the color palette for rendered trace lines. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Timestamp and process identity at the start of each line.
	Timestamp lipgloss.Color
	Process   lipgloss.Color

	// Event kind colors. Message-flow kinds and function-flow kinds
	// get distinct hues so a mixed capture scans visually.
	Send      lipgloss.Color
	Receive   lipgloss.Color
	Call      lipgloss.Color
	Return    lipgloss.Color
	Exception lipgloss.Color
	Spawn     lipgloss.Color
	Exit      lipgloss.Color
	GC        lipgloss.Color

	// Payload bodies (messages, arguments, return values).
	Payload lipgloss.Color

	// FaintText is the fallback for unknown kinds and secondary
	// detail.
	FaintText lipgloss.Color
}

// KindColor returns the color for an event kind. Unknown kinds
// return FaintText.
func (theme Theme) KindColor(kind tracefile.Kind) lipgloss.Color {
	switch kind {
	case tracefile.KindSend:
		return theme.Send
	case tracefile.KindReceive:
		return theme.Receive
	case tracefile.KindCall:
		return theme.Call
	case tracefile.KindReturn:
		return theme.Return
	case tracefile.KindException:
		return theme.Exception
	case tracefile.KindSpawn:
		return theme.Spawn
	case tracefile.KindExit:
		return theme.Exit
	case tracefile.KindGC:
		return theme.GC
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	Timestamp: lipgloss.Color("245"),
	Process:   lipgloss.Color("252"),

	Send:      lipgloss.Color("75"),  // blue
	Receive:   lipgloss.Color("114"), // green
	Call:      lipgloss.Color("220"), // amber
	Return:    lipgloss.Color("141"), // light purple
	Exception: lipgloss.Color("196"), // bright red
	Spawn:     lipgloss.Color("80"),  // teal
	Exit:      lipgloss.Color("208"), // orange
	GC:        lipgloss.Color("240"), // dim gray

	Payload:   lipgloss.Color("252"),
	FaintText: lipgloss.Color("245"),
}
