package automaton

import "sort"

// State identifies a single automaton state. It has no internal structure.
type State string

// Symbol is one atomic input token. The original tooling uses single
// characters, but membership is plain string equality, so multi-rune
// symbols work everywhere except SplitInput.
type Symbol string

// Key addresses one cell of the transition function.
// Structured pair keys avoid the delimiter ambiguity of the wire format.
type Key struct {
	State  State  `json:"state"`
	Symbol Symbol `json:"symbol"`
}

// Automaton is a validated, immutable DFA. Construct via New, Decode or
// builder.Session.Finalize; a zero Automaton is not usable.
type Automaton struct {
	states   []State // sorted
	alphabet []Symbol
	delta    map[Key]State
	start    State
	finals   map[State]bool
}

// New validates the five components and returns an immutable Automaton.
// Invariants are checked in a fixed order and the first violation is
// returned as a *ValidationError, so a given malformed input always
// yields the same error. Duplicate states or symbols collapse to one
// entry (set semantics).
func New(states []State, alphabet []Symbol, delta map[Key]State, start State, finals []State) (*Automaton, error) {
	if len(states) == 0 {
		return nil, &ValidationError{Kind: EmptyStates}
	}
	if len(alphabet) == 0 {
		return nil, &ValidationError{Kind: EmptyAlphabet}
	}

	stateSet := make(map[State]bool, len(states))
	for _, s := range states {
		if s == "" {
			return nil, &ValidationError{Kind: EmptyStateName}
		}
		stateSet[s] = true
	}
	symbolSet := make(map[Symbol]bool, len(alphabet))
	for _, sym := range alphabet {
		if sym == "" {
			return nil, &ValidationError{Kind: EmptySymbolName}
		}
		symbolSet[sym] = true
	}

	if !stateSet[start] {
		return nil, &ValidationError{Kind: StartStateNotInStates, State: start}
	}
	for _, f := range finals {
		if !stateSet[f] {
			return nil, &ValidationError{Kind: FinalStateNotInStates, State: f}
		}
	}

	// Map iteration order is random, so check keys in sorted order to
	// keep the reported violation stable.
	keys := sortedKeys(delta)
	for _, k := range keys {
		if !stateSet[k.State] {
			return nil, &ValidationError{Kind: TransitionSourceStateInvalid, State: k.State, Symbol: k.Symbol}
		}
		if !symbolSet[k.Symbol] {
			return nil, &ValidationError{Kind: TransitionSymbolInvalid, State: k.State, Symbol: k.Symbol}
		}
	}
	for _, k := range keys {
		if target := delta[k]; !stateSet[target] {
			return nil, &ValidationError{Kind: TransitionTargetInvalid, State: target, Symbol: k.Symbol}
		}
	}

	a := &Automaton{
		states:   make([]State, 0, len(stateSet)),
		alphabet: make([]Symbol, 0, len(symbolSet)),
		delta:    make(map[Key]State, len(delta)),
		start:    start,
		finals:   make(map[State]bool, len(finals)),
	}
	for s := range stateSet {
		a.states = append(a.states, s)
	}
	sort.Slice(a.states, func(i, j int) bool { return a.states[i] < a.states[j] })
	for sym := range symbolSet {
		a.alphabet = append(a.alphabet, sym)
	}
	sort.Slice(a.alphabet, func(i, j int) bool { return a.alphabet[i] < a.alphabet[j] })
	for k, v := range delta {
		a.delta[k] = v
	}
	for _, f := range finals {
		a.finals[f] = true
	}
	return a, nil
}

// States returns the state set in sorted order. The slice is a copy.
func (a *Automaton) States() []State {
	out := make([]State, len(a.states))
	copy(out, a.states)
	return out
}

// Alphabet returns the symbol set in sorted order. The slice is a copy.
func (a *Automaton) Alphabet() []Symbol {
	out := make([]Symbol, len(a.alphabet))
	copy(out, a.alphabet)
	return out
}

// Start returns the start state.
func (a *Automaton) Start() State { return a.start }

// Finals returns the accepting states in sorted order. May be empty, in
// which case the automaton rejects every input.
func (a *Automaton) Finals() []State {
	out := make([]State, 0, len(a.finals))
	for s := range a.finals {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsFinal reports whether s is an accepting state.
func (a *Automaton) IsFinal(s State) bool { return a.finals[s] }

// Next looks up the transition for (s, sym). ok is false when the
// transition function has no entry for that pair.
func (a *Automaton) Next(s State, sym Symbol) (State, bool) {
	target, ok := a.delta[Key{State: s, Symbol: sym}]
	return target, ok
}

// Transitions returns a copy of the transition map.
func (a *Automaton) Transitions() map[Key]State {
	out := make(map[Key]State, len(a.delta))
	for k, v := range a.delta {
		out[k] = v
	}
	return out
}

// Complete reports whether every (state, symbol) pair has a transition.
func (a *Automaton) Complete() bool { return len(a.MissingTransitions()) == 0 }

// MissingTransitions lists the (state, symbol) pairs without an entry,
// states outer and symbols inner, both in sorted order.
func (a *Automaton) MissingTransitions() []Key {
	var missing []Key
	for _, s := range a.states {
		for _, sym := range a.alphabet {
			if _, ok := a.delta[Key{State: s, Symbol: sym}]; !ok {
				missing = append(missing, Key{State: s, Symbol: sym})
			}
		}
	}
	return missing
}

// Equal reports structural equality: same state set, alphabet,
// transition map, start state and final set. Ordering never matters.
func (a *Automaton) Equal(b *Automaton) bool {
	if b == nil || a.start != b.start ||
		len(a.states) != len(b.states) ||
		len(a.alphabet) != len(b.alphabet) ||
		len(a.delta) != len(b.delta) ||
		len(a.finals) != len(b.finals) {
		return false
	}
	for i, s := range a.states {
		if b.states[i] != s {
			return false
		}
	}
	for i, sym := range a.alphabet {
		if b.alphabet[i] != sym {
			return false
		}
	}
	for k, v := range a.delta {
		if bv, ok := b.delta[k]; !ok || bv != v {
			return false
		}
	}
	for f := range a.finals {
		if !b.finals[f] {
			return false
		}
	}
	return true
}

// SplitInput breaks a string into one Symbol per rune, matching the
// single-character convention of hand-written DFA documents.
func SplitInput(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, Symbol(r))
	}
	return syms
}

func sortedKeys(delta map[Key]State) []Key {
	keys := make([]Key, 0, len(delta))
	for k := range delta {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].State != keys[j].State {
			return keys[i].State < keys[j].State
		}
		return keys[i].Symbol < keys[j].Symbol
	})
	return keys
}
