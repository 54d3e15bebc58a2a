// Package graph renders automata as Mermaid or Graphviz DOT diagrams,
// optionally overlaying the path of an execution trace.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fsmlab/dfakit/pkg/automaton"
)

// Overlay carries dynamic trace data to visualize on top of the
// static automaton structure.
type Overlay struct {
	VisitedStates []automaton.State
	CurrentState  automaton.State
}

// GenerateMermaid produces a Mermaid flowchart from an automaton.
// Semantic styling:
//   - start state: ((double circle)) with an entry arrow
//   - final states: [[subroutine]] marker
//   - default: [rectangle]
//
// Overlay styles (visited/current) are appended if provided.
func GenerateMermaid(a *automaton.Automaton, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	sb.WriteString("    __start__((start))\n")
	sb.WriteString(fmt.Sprintf("    __start__ --> %s\n", sanitizeMermaidID(a.Start())))

	for _, state := range a.States() {
		safeID := sanitizeMermaidID(state)

		opener, closer := "[", "]"
		if a.IsFinal(state) {
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, state, closer))
	}

	for _, e := range sortedEdges(a) {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(e.from), strings.Join(e.labels, ","), sanitizeMermaidID(e.to)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, st := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(st)
			if safeID != "" && !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentState)))
		}
	}

	return sb.String()
}

// edge groups parallel transitions between the same pair of states so
// the diagram shows one arrow labeled "a,b" instead of two.
type edge struct {
	from, to automaton.State
	labels   []string
}

func sortedEdges(a *automaton.Automaton) []edge {
	grouped := make(map[automaton.Key][]string)
	for k, target := range a.Transitions() {
		pair := automaton.Key{State: k.State, Symbol: automaton.Symbol(target)}
		grouped[pair] = append(grouped[pair], string(k.Symbol))
	}

	edges := make([]edge, 0, len(grouped))
	for pair, labels := range grouped {
		sort.Strings(labels)
		edges = append(edges, edge{from: pair.State, to: automaton.State(pair.Symbol), labels: labels})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})
	return edges
}

func sanitizeMermaidID(s automaton.State) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", ",", "_")
	return r.Replace(string(s))
}
