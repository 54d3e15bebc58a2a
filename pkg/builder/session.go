package builder

import (
	"fmt"
	"sort"

	"github.com/fsmlab/dfakit/pkg/automaton"
)

// RefKind says which collection an unknown reference was checked against.
type RefKind int

const (
	RefState RefKind = iota
	RefSymbol
)

// UnknownReferenceError is returned by Session mutations that reference
// a state or symbol not previously added to the draft.
type UnknownReferenceError struct {
	Kind RefKind
	Name string
}

func (e *UnknownReferenceError) Error() string {
	if e.Kind == RefSymbol {
		return fmt.Sprintf("builder: symbol %q has not been added to the draft", e.Name)
	}
	return fmt.Sprintf("builder: state %q has not been added to the draft", e.Name)
}

// Completeness is the result of Report: the facts a caller needs to
// decide whether to warn before exporting.
type Completeness struct {
	// Missing lists (state, symbol) pairs without a transition, states
	// outer and symbols inner, in draft insertion order.
	Missing []automaton.Key `json:"missing_transitions"`
	// HasFinalStates is false when the draft accepts nothing.
	HasFinalStates bool `json:"has_final_states"`
}

// Complete reports whether the draft has no gaps to warn about.
func (c Completeness) Complete() bool {
	return len(c.Missing) == 0 && c.HasFinalStates
}

// Session is an in-progress automaton draft. Insertion order of states,
// symbols and finals is retained for display; it carries no semantics.
type Session struct {
	states  []automaton.State
	symbols []automaton.Symbol
	delta   map[automaton.Key]automaton.State
	start   automaton.State
	finals  []automaton.State
}

// NewSession creates an empty draft.
func NewSession() *Session {
	return &Session{delta: make(map[automaton.Key]automaton.State)}
}

// FromAutomaton pre-populates a draft from an existing automaton so it
// can be edited; a new Session is the only way to change a built
// automaton. Entries come out in sorted order.
func FromAutomaton(a *automaton.Automaton) *Session {
	s := NewSession()
	s.states = a.States()
	s.symbols = a.Alphabet()
	s.delta = a.Transitions()
	s.start = a.Start()
	s.finals = a.Finals()
	return s
}

// AddState adds a state to the draft. It reports whether the state was
// newly added; duplicates and empty names are no-ops.
func (s *Session) AddState(name automaton.State) bool {
	if name == "" || s.hasState(name) {
		return false
	}
	s.states = append(s.states, name)
	return true
}

// RemoveState deletes a state and cascades: every transition with it as
// source or target disappears, its final marker is dropped, and the
// start designation is cleared if it pointed at the removed state.
func (s *Session) RemoveState(name automaton.State) bool {
	idx := -1
	for i, st := range s.states {
		if st == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.states = append(s.states[:idx], s.states[idx+1:]...)
	for k, target := range s.delta {
		if k.State == name || target == name {
			delete(s.delta, k)
		}
	}
	s.RemoveFinal(name)
	if s.start == name {
		s.start = ""
	}
	return true
}

// AddSymbol adds an alphabet symbol. Duplicates and empty symbols are
// no-ops.
func (s *Session) AddSymbol(sym automaton.Symbol) bool {
	if sym == "" || s.hasSymbol(sym) {
		return false
	}
	s.symbols = append(s.symbols, sym)
	return true
}

// RemoveSymbol deletes a symbol and every transition keyed by it.
func (s *Session) RemoveSymbol(sym automaton.Symbol) bool {
	idx := -1
	for i, sm := range s.symbols {
		if sm == sym {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.symbols = append(s.symbols[:idx], s.symbols[idx+1:]...)
	for k := range s.delta {
		if k.Symbol == sym {
			delete(s.delta, k)
		}
	}
	return true
}

// SetTransition sets delta(state, symbol) = target. All three must
// already be in the draft. An existing entry for the pair is silently
// overwritten; prompting about overwrites is the caller's business.
func (s *Session) SetTransition(state automaton.State, sym automaton.Symbol, target automaton.State) error {
	if !s.hasState(state) {
		return &UnknownReferenceError{Kind: RefState, Name: string(state)}
	}
	if !s.hasSymbol(sym) {
		return &UnknownReferenceError{Kind: RefSymbol, Name: string(sym)}
	}
	if !s.hasState(target) {
		return &UnknownReferenceError{Kind: RefState, Name: string(target)}
	}
	s.delta[automaton.Key{State: state, Symbol: sym}] = target
	return nil
}

// RemoveTransition deletes the entry for (state, symbol) if present.
func (s *Session) RemoveTransition(state automaton.State, sym automaton.Symbol) bool {
	k := automaton.Key{State: state, Symbol: sym}
	if _, ok := s.delta[k]; !ok {
		return false
	}
	delete(s.delta, k)
	return true
}

// SetStart designates the start state, which must already be added.
func (s *Session) SetStart(state automaton.State) error {
	if !s.hasState(state) {
		return &UnknownReferenceError{Kind: RefState, Name: string(state)}
	}
	s.start = state
	return nil
}

// AddFinal marks an added state as accepting. Marking twice is a no-op.
func (s *Session) AddFinal(state automaton.State) error {
	if !s.hasState(state) {
		return &UnknownReferenceError{Kind: RefState, Name: string(state)}
	}
	for _, f := range s.finals {
		if f == state {
			return nil
		}
	}
	s.finals = append(s.finals, state)
	return nil
}

// RemoveFinal unmarks an accepting state.
func (s *Session) RemoveFinal(state automaton.State) bool {
	for i, f := range s.finals {
		if f == state {
			s.finals = append(s.finals[:i], s.finals[i+1:]...)
			return true
		}
	}
	return false
}

// States returns the draft states in insertion order.
func (s *Session) States() []automaton.State {
	return append([]automaton.State{}, s.states...)
}

// Symbols returns the draft alphabet in insertion order.
func (s *Session) Symbols() []automaton.Symbol {
	return append([]automaton.Symbol{}, s.symbols...)
}

// Start returns the draft start state, empty if unset.
func (s *Session) Start() automaton.State { return s.start }

// Finals returns the draft final states in insertion order.
func (s *Session) Finals() []automaton.State {
	return append([]automaton.State{}, s.finals...)
}

// Transitions returns a copy of the draft transition map.
func (s *Session) Transitions() map[automaton.Key]automaton.State {
	out := make(map[automaton.Key]automaton.State, len(s.delta))
	for k, v := range s.delta {
		out[k] = v
	}
	return out
}

// Report inspects the draft without mutating it. It never fails: a
// draft with no states and no symbols simply has nothing missing.
func (s *Session) Report() Completeness {
	c := Completeness{
		Missing:        []automaton.Key{},
		HasFinalStates: len(s.finals) > 0,
	}
	for _, st := range s.states {
		for _, sym := range s.symbols {
			if _, ok := s.delta[automaton.Key{State: st, Symbol: sym}]; !ok {
				c.Missing = append(c.Missing, automaton.Key{State: st, Symbol: sym})
			}
		}
	}
	return c
}

// Finalize hands the draft verbatim to the automaton constructor. No
// leniency here: callers that want to proceed past Report warnings do
// so by calling Finalize regardless, but the hard invariants always
// apply.
func (s *Session) Finalize() (*automaton.Automaton, error) {
	return automaton.New(s.States(), s.Symbols(), s.Transitions(), s.start, s.Finals())
}

func (s *Session) hasState(name automaton.State) bool {
	for _, st := range s.states {
		if st == name {
			return true
		}
	}
	return false
}

func (s *Session) hasSymbol(sym automaton.Symbol) bool {
	for _, sm := range s.symbols {
		if sm == sym {
			return true
		}
	}
	return false
}

// Draft is the JSON snapshot of a Session, used by session stores and
// the HTTP API. Transitions are listed as explicit triples so draft
// persistence never depends on the wire key delimiter.
type Draft struct {
	States      []string          `json:"states"`
	Alphabet    []string          `json:"alphabet"`
	Transitions []TransitionEntry `json:"transitions"`
	StartState  string            `json:"start_state,omitempty"`
	FinalStates []string          `json:"final_states"`
}

// TransitionEntry is one delta cell in a Draft.
type TransitionEntry struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}

// Snapshot captures the session as a Draft. Transition entries are
// sorted so snapshots are deterministic.
func (s *Session) Snapshot() Draft {
	d := Draft{
		States:      make([]string, 0, len(s.states)),
		Alphabet:    make([]string, 0, len(s.symbols)),
		Transitions: make([]TransitionEntry, 0, len(s.delta)),
		StartState:  string(s.start),
		FinalStates: make([]string, 0, len(s.finals)),
	}
	for _, st := range s.states {
		d.States = append(d.States, string(st))
	}
	for _, sym := range s.symbols {
		d.Alphabet = append(d.Alphabet, string(sym))
	}
	for k, v := range s.delta {
		d.Transitions = append(d.Transitions, TransitionEntry{
			From:   string(k.State),
			Symbol: string(k.Symbol),
			To:     string(v),
		})
	}
	sort.Slice(d.Transitions, func(i, j int) bool {
		if d.Transitions[i].From != d.Transitions[j].From {
			return d.Transitions[i].From < d.Transitions[j].From
		}
		return d.Transitions[i].Symbol < d.Transitions[j].Symbol
	})
	for _, f := range s.finals {
		d.FinalStates = append(d.FinalStates, string(f))
	}
	return d
}

// FromDraft restores a Session from a snapshot. Entries violating the
// draft's own referential rules (transitions or markers naming unknown
// states or symbols) are rejected the same way live mutations are.
func FromDraft(d Draft) (*Session, error) {
	s := NewSession()
	for _, st := range d.States {
		s.AddState(automaton.State(st))
	}
	for _, sym := range d.Alphabet {
		s.AddSymbol(automaton.Symbol(sym))
	}
	for _, tr := range d.Transitions {
		if err := s.SetTransition(automaton.State(tr.From), automaton.Symbol(tr.Symbol), automaton.State(tr.To)); err != nil {
			return nil, err
		}
	}
	if d.StartState != "" {
		if err := s.SetStart(automaton.State(d.StartState)); err != nil {
			return nil, err
		}
	}
	for _, f := range d.FinalStates {
		if err := s.AddFinal(automaton.State(f)); err != nil {
			return nil, err
		}
	}
	return s, nil
}
