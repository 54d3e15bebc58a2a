package graph

import (
	"fmt"
	"strings"

	"github.com/fsmlab/dfakit/pkg/automaton"
)

// GenerateDOT produces a Graphviz DOT digraph. Final states get a
// doublecircle shape, the start state gets an entry arrow from an
// invisible point node, and overlay states are filled.
func GenerateDOT(a *automaton.Automaton, overlay *Overlay) string {
	var sb strings.Builder

	sb.WriteString("digraph DFA {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	sb.WriteString("  __start__ [shape=point];\n")
	sb.WriteString(fmt.Sprintf("  __start__ -> %q;\n", a.Start()))
	sb.WriteString("\n")

	visited := make(map[automaton.State]bool)
	var current automaton.State
	if overlay != nil {
		for _, st := range overlay.VisitedStates {
			visited[st] = true
		}
		current = overlay.CurrentState
	}

	for _, state := range a.States() {
		attrs := []string{}
		if a.IsFinal(state) {
			attrs = append(attrs, "shape=doublecircle")
		}
		switch {
		case state == current:
			attrs = append(attrs, `style=filled`, `fillcolor="#ffeb3b"`)
		case visited[state]:
			attrs = append(attrs, `style=filled`, `fillcolor="#e1f5fe"`)
		}
		if len(attrs) > 0 {
			sb.WriteString(fmt.Sprintf("  %q [%s];\n", state, strings.Join(attrs, ", ")))
		} else {
			sb.WriteString(fmt.Sprintf("  %q;\n", state))
		}
	}
	sb.WriteString("\n")

	for _, e := range sortedEdges(a) {
		sb.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n", e.from, e.to, strings.Join(e.labels, ",")))
	}

	sb.WriteString("}\n")
	return sb.String()
}
