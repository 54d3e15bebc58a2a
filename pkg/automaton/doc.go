/*
Package automaton implements the core DFA model: an immutable, eagerly
validated automaton value, an evaluator producing verdicts and execution
traces, and the canonical JSON document codec.

The package is pure: construction, evaluation and encoding never log,
never touch the filesystem and never mutate shared state. An Automaton
is validated once at construction and is safe for concurrent reads.

Basic usage:

	a, err := automaton.New(
		[]automaton.State{"q0", "q1"},
		[]automaton.Symbol{"a", "b"},
		map[automaton.Key]automaton.State{
			{State: "q0", Symbol: "a"}: "q1",
			{State: "q0", Symbol: "b"}: "q0",
			{State: "q1", Symbol: "a"}: "q0",
			{State: "q1", Symbol: "b"}: "q1",
		},
		"q0",
		[]automaton.State{"q0"},
	)
	if err != nil {
		// *ValidationError describing the first violated invariant
	}

	ok, err := a.Accepts(automaton.SplitInput("aa"))

Mutable editing lives in the builder package; this package only deals in
finished automata.
*/
package automaton
