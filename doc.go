/*
Package dfakit is a deterministic finite automaton (DFA) toolkit: a
validated core model, a step-by-step evaluator, an incremental builder,
and a canonical JSON interchange format.

# Concept

A dfakit automaton is the classic five-tuple: states, alphabet, a
transition function, a start state, and a set of final states. The
transition function may be partial; running an input over a missing
transition halts the machine with a structured error instead of
guessing. Construction is eager and strict, so once you hold an
Automaton every invariant already holds and evaluation cannot fail for
structural reasons.

# Key Features

  - Deterministic Execution: one source state and one symbol always
    resolve to at most one target state.
  - Strict Construction: invalid definitions are rejected up front with
    typed, inspectable errors.
  - Incremental Building: the builder package grows a draft machine
    mutation by mutation and reports completeness before export.
  - Canonical Interchange: a stable JSON document format with exact
    round-tripping and precise decode diagnostics.

# Usage

Construct a machine, then run inputs over it:

	package main

	import (
		"fmt"
		"log"

		"github.com/fsmlab/dfakit/pkg/automaton"
	)

	func main() {
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
			log.Fatal(err)
		}

		accepted, err := a.Accepts(automaton.SplitInput("abba"))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(accepted)
	}

For interactive construction use the builder package, and for the wire
format use automaton.Decode and automaton.Encode.
*/
package dfakit
