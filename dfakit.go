package dfakit

import (
	"github.com/fsmlab/dfakit/pkg/automaton"
	"github.com/fsmlab/dfakit/pkg/builder"
)

// Version is the toolkit release version, reported by the CLI and the
// HTTP health endpoint.
const Version = "0.1.0"

// Parse decodes and validates a JSON automaton document.
func Parse(data []byte) (*automaton.Automaton, error) {
	return automaton.Decode(data)
}

// Export renders an automaton as its canonical JSON document.
func Export(a *automaton.Automaton) ([]byte, error) {
	return automaton.Encode(a)
}

// NewBuilder starts an empty builder session.
func NewBuilder() *builder.Session {
	return builder.NewSession()
}

// Edit opens a builder session seeded from an existing automaton.
func Edit(a *automaton.Automaton) *builder.Session {
	return builder.FromAutomaton(a)
}
