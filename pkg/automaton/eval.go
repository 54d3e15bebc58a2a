package automaton

import (
	"fmt"
	"strings"
)

// Step is one entry of an execution trace.
//
// The first step (Index 0) consumes no symbol and only records the start
// state. Every later step consumes exactly one input symbol. The last
// step of a completed run has Terminal set and carries the verdict.
type Step struct {
	Index     int      `json:"index"`
	Symbol    Symbol   `json:"symbol,omitempty"` // empty on the initial step
	From      State    `json:"from"`
	To        State    `json:"to"`
	Processed []Symbol `json:"processed"`
	Remaining []Symbol `json:"remaining"`
	Terminal  bool     `json:"terminal"`
	Accepted  bool     `json:"accepted"` // meaningful only when Terminal
}

// String renders the step the way the interactive debugger displays it.
func (s Step) String() string {
	if s.Index == 0 {
		return fmt.Sprintf("initial state %s, input %q", s.From, joinSymbols(s.Remaining))
	}
	return fmt.Sprintf("step %d: read %q, %s -> %s (processed %q, remaining %q)",
		s.Index, string(s.Symbol), s.From, s.To, joinSymbols(s.Processed), joinSymbols(s.Remaining))
}

// TraceResult is the outcome of one Trace run, owned by the caller.
//
// On failure Err is non-nil and Steps holds the partial trace up to the
// failure point, so callers can still display the progress made. When a
// failure occurs at input position k, Steps has exactly k+1 entries.
type TraceResult struct {
	Steps    []Step
	Accepted bool // false whenever Err != nil
	Err      *EvalError
}

// Final returns the last reached state.
func (r *TraceResult) Final() State {
	return r.Steps[len(r.Steps)-1].To
}

// Path lists every state visited, in order, including repeats.
func (r *TraceResult) Path() []State {
	path := make([]State, 0, len(r.Steps))
	for _, s := range r.Steps {
		path = append(path, s.To)
	}
	return path
}

// Accepts walks the input through the transition function and reports
// whether the run ends in a final state. Symbols outside the alphabet
// are rejected before any lookup; a transition lookup miss halts the run
// with an error rather than a verdict. The empty input is legal: the
// verdict is whether the start state is final.
func (a *Automaton) Accepts(input []Symbol) (bool, error) {
	current := a.start
	for i, sym := range input {
		next, err := a.step(current, sym, i)
		if err != nil {
			return false, err
		}
		current = next
	}
	return a.finals[current], nil
}

// Trace performs the same walk as Accepts but materializes every step.
// The result always contains at least the initial step; when Err is set
// the steps up to the failure are still present.
func (a *Automaton) Trace(input []Symbol) *TraceResult {
	res := &TraceResult{
		Steps: []Step{{
			Index:     0,
			From:      a.start,
			To:        a.start,
			Processed: []Symbol{},
			Remaining: append([]Symbol{}, input...),
		}},
	}

	current := a.start
	for i, sym := range input {
		next, err := a.step(current, sym, i)
		if err != nil {
			res.Err = err
			return res
		}
		res.Steps = append(res.Steps, Step{
			Index:     i + 1,
			Symbol:    sym,
			From:      current,
			To:        next,
			Processed: append([]Symbol{}, input[:i+1]...),
			Remaining: append([]Symbol{}, input[i+1:]...),
		})
		current = next
	}

	last := &res.Steps[len(res.Steps)-1]
	last.Terminal = true
	last.Accepted = a.finals[current]
	res.Accepted = last.Accepted
	return res
}

func (a *Automaton) step(current State, sym Symbol, pos int) (State, *EvalError) {
	// Alphabet membership is a distinct pre-check: out-of-alphabet input
	// is the caller's mistake, not a hole in the transition function.
	if !a.inAlphabet(sym) {
		return "", &EvalError{Kind: SymbolNotInAlphabet, State: current, Symbol: sym, Position: pos}
	}
	next, ok := a.delta[Key{State: current, Symbol: sym}]
	if !ok {
		return "", &EvalError{Kind: UndefinedTransition, State: current, Symbol: sym, Position: pos}
	}
	return next, nil
}

func (a *Automaton) inAlphabet(sym Symbol) bool {
	for _, s := range a.alphabet {
		if s == sym {
			return true
		}
	}
	return false
}

func joinSymbols(syms []Symbol) string {
	var b strings.Builder
	for _, s := range syms {
		b.WriteString(string(s))
	}
	return b.String()
}
