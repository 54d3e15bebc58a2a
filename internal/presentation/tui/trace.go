package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/fsmlab/dfakit/pkg/automaton"
)

// Verdict renders ACCEPTED in green or REJECTED in red, matching the
// result labels of the desktop visualizer this tool replaces.
func Verdict(accepted bool) string {
	p := termenv.ColorProfile()
	if accepted {
		return termenv.String("ACCEPTED").Foreground(p.Color("#22c55e")).Bold().String()
	}
	return termenv.String("REJECTED").Foreground(p.Color("#ef4444")).Bold().String()
}

// TraceMarkdown lays out a trace as a markdown document for glamour.
func TraceMarkdown(input string, res *automaton.TraceResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Tracing %q\n\n", input)

	for _, step := range res.Steps {
		if step.Index == 0 {
			fmt.Fprintf(&sb, "**Initial state:** `%s`\n\n", step.From)
			continue
		}
		fmt.Fprintf(&sb, "**Step %d** — read `%s`: `%s` → `%s`\n\n", step.Index, step.Symbol, step.From, step.To)
		fmt.Fprintf(&sb, "  - processed: `%q`\n", symbolsString(step.Processed))
		fmt.Fprintf(&sb, "  - remaining: `%q`\n\n", symbolsString(step.Remaining))
	}

	if res.Err != nil {
		fmt.Fprintf(&sb, "**Halted:** %s\n", res.Err.Error())
		return sb.String()
	}

	verdict := "REJECTED"
	if res.Accepted {
		verdict = "ACCEPTED"
	}
	fmt.Fprintf(&sb, "**Final state:** `%s` — **%s**\n", res.Final(), verdict)
	return sb.String()
}

// TracePlain is the no-frills rendition for pipes and dumb terminals,
// one line per step in the debugger's log format.
func TracePlain(input string, res *automaton.TraceResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Tracing %q (%d steps) ===\n", input, len(res.Steps))
	for _, step := range res.Steps {
		sb.WriteString(step.String())
		sb.WriteString("\n")
	}
	if res.Err != nil {
		fmt.Fprintf(&sb, "halted: %s\n", res.Err.Error())
		return sb.String()
	}
	verdict := "REJECTED"
	if res.Accepted {
		verdict = "ACCEPTED"
	}
	fmt.Fprintf(&sb, "final state %s: %s\n", res.Final(), verdict)
	return sb.String()
}

func symbolsString(syms []automaton.Symbol) string {
	var sb strings.Builder
	for _, s := range syms {
		sb.WriteString(string(s))
	}
	return sb.String()
}
