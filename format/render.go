// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/probe/lib/codec"
	"github.com/bureau-foundation/probe/proc"
	"github.com/bureau-foundation/probe/tracefile"
)

// timestampLayout shows wall-clock time at millisecond resolution.
// Captures rarely span a day, so the date is omitted.
const timestampLayout = "15:04:05.000"

// maxPayloadRunes truncates rendered payload bodies. Full payloads
// are available via the raw inspection mode.
const maxPayloadRunes = 120

// Renderer formats trace events as single display lines. Construct
// with [NewRenderer]; the zero value renders nothing useful.
type Renderer struct {
	theme     Theme
	timestamp lipgloss.Style
	process   lipgloss.Style
	payload   lipgloss.Style
	kinds     map[tracefile.Kind]lipgloss.Style
	faint     lipgloss.Style
}

// NewRenderer returns a Renderer bound to the given output writer and
// color profile. The profile decides how theme colors degrade:
// termenv.ANSI256 for capable terminals, termenv.Ascii for plain
// text. The writer is only used for profile binding; Render returns
// strings rather than writing.
func NewRenderer(output io.Writer, profile termenv.Profile, theme Theme) *Renderer {
	// lipgloss re-detects the profile from the writer unless one is
	// forced explicitly.
	base := lipgloss.NewRenderer(output, termenv.WithProfile(profile))
	base.SetColorProfile(profile)

	renderer := &Renderer{
		theme:     theme,
		timestamp: base.NewStyle().Foreground(theme.Timestamp),
		process:   base.NewStyle().Foreground(theme.Process),
		payload:   base.NewStyle().Foreground(theme.Payload),
		faint:     base.NewStyle().Foreground(theme.FaintText),
		kinds:     make(map[tracefile.Kind]lipgloss.Style),
	}
	for _, kind := range []tracefile.Kind{
		tracefile.KindSend, tracefile.KindReceive,
		tracefile.KindCall, tracefile.KindReturn, tracefile.KindException,
		tracefile.KindSpawn, tracefile.KindExit, tracefile.KindGC,
	} {
		renderer.kinds[kind] = base.NewStyle().Foreground(theme.KindColor(kind))
	}
	return renderer
}

// Render formats one event as a display line without a trailing
// newline.
func (r *Renderer) Render(event tracefile.Event) string {
	var line strings.Builder

	line.WriteString(r.timestamp.Render(event.Time.Format(timestampLayout)))
	line.WriteByte(' ')
	line.WriteString(r.process.Render(event.Proc.String()))
	line.WriteByte(' ')
	line.WriteString(r.kindStyle(event.Kind).Render(string(event.Kind)))

	if body := r.renderBody(event); body != "" {
		line.WriteByte(' ')
		line.WriteString(body)
	}
	return line.String()
}

func (r *Renderer) kindStyle(kind tracefile.Kind) lipgloss.Style {
	if style, ok := r.kinds[kind]; ok {
		return style
	}
	return r.faint
}

// renderBody produces the kind-specific remainder of the line.
func (r *Renderer) renderBody(event tracefile.Event) string {
	switch event.Kind {
	case tracefile.KindSend:
		return r.peerAndPayload("to", event.Peer, event.Message)

	case tracefile.KindReceive:
		return r.peerAndPayload("from", event.Peer, event.Message)

	case tracefile.KindCall:
		arguments := make([]string, len(event.Args))
		for i, argument := range event.Args {
			arguments[i] = r.diagnose(argument)
		}
		return fmt.Sprintf("%s(%s)",
			r.process.Render(functionName(event)),
			r.payload.Render(strings.Join(arguments, ", ")))

	case tracefile.KindReturn:
		body := r.process.Render(functionName(event))
		if len(event.Value) > 0 {
			body += " = " + r.payload.Render(r.diagnose(event.Value))
		}
		return body

	case tracefile.KindException:
		return r.process.Render(functionName(event)) + ": " + r.payload.Render(event.Reason)

	case tracefile.KindSpawn:
		if event.Peer != nil {
			return r.process.Render(event.Peer.String())
		}
		return ""

	case tracefile.KindExit:
		if event.Reason != "" {
			return r.payload.Render(event.Reason)
		}
		return ""

	default:
		return ""
	}
}

// peerAndPayload renders "to pid payload" / "from pid payload",
// dropping parts that are absent.
func (r *Renderer) peerAndPayload(direction string, peer *proc.ID, message codec.RawMessage) string {
	var parts []string
	if peer != nil {
		parts = append(parts, r.faint.Render(direction)+" "+r.process.Render(peer.String()))
	}
	if len(message) > 0 {
		parts = append(parts, r.payload.Render(r.diagnose(message)))
	}
	return strings.Join(parts, " ")
}

// functionName renders "module.Function/arity" the way call targets
// are written everywhere else.
func functionName(event tracefile.Event) string {
	return fmt.Sprintf("%s.%s/%d", event.Module, event.Function, event.Arity)
}

// diagnose renders a raw CBOR payload in diagnostic notation,
// truncated to a displayable length. Undecodable payloads render as
// a hex placeholder rather than failing the line.
func (r *Renderer) diagnose(payload codec.RawMessage) string {
	if len(payload) == 0 {
		return ""
	}
	notation, err := codec.Diagnose(payload)
	if err != nil {
		return fmt.Sprintf("<%d undecodable bytes>", len(payload))
	}
	runes := []rune(notation)
	if len(runes) > maxPayloadRunes {
		return string(runes[:maxPayloadRunes]) + "…"
	}
	return notation
}
