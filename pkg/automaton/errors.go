package automaton

import "fmt"

// ValidationKind enumerates the structural invariants checked by New.
type ValidationKind int

const (
	EmptyStates ValidationKind = iota
	EmptyAlphabet
	EmptyStateName
	EmptySymbolName
	StartStateNotInStates
	FinalStateNotInStates
	TransitionSourceStateInvalid
	TransitionSymbolInvalid
	TransitionTargetInvalid
)

// ValidationError is returned by New when an invariant does not hold.
// State/Symbol carry the offending identifiers where applicable.
type ValidationError struct {
	Kind   ValidationKind
	State  State
	Symbol Symbol
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyStates:
		return "dfa: state set is empty"
	case EmptyAlphabet:
		return "dfa: alphabet is empty"
	case EmptyStateName:
		return "dfa: state name is empty"
	case EmptySymbolName:
		return "dfa: alphabet symbol is empty"
	case StartStateNotInStates:
		return fmt.Sprintf("dfa: start state %q is not in the state set", e.State)
	case FinalStateNotInStates:
		return fmt.Sprintf("dfa: final state %q is not in the state set", e.State)
	case TransitionSourceStateInvalid:
		return fmt.Sprintf("dfa: transition source %q is not in the state set", e.State)
	case TransitionSymbolInvalid:
		return fmt.Sprintf("dfa: transition symbol %q (from state %q) is not in the alphabet", e.Symbol, e.State)
	case TransitionTargetInvalid:
		return fmt.Sprintf("dfa: transition target %q is not in the state set", e.State)
	}
	return "dfa: invalid automaton"
}

// EvalKind enumerates evaluation failures.
type EvalKind int

const (
	// SymbolNotInAlphabet: an input symbol is outside the alphabet.
	// Detected before any transition lookup is attempted.
	SymbolNotInAlphabet EvalKind = iota
	// UndefinedTransition: the transition function has no entry for the
	// current (state, symbol) pair. Evaluation halts immediately.
	UndefinedTransition
)

// EvalError halts an evaluation run. Position is the zero-based index of
// the input symbol being processed when the failure occurred.
type EvalError struct {
	Kind     EvalKind
	State    State
	Symbol   Symbol
	Position int
}

func (e *EvalError) Error() string {
	if e.Kind == SymbolNotInAlphabet {
		return fmt.Sprintf("dfa: input symbol %q at position %d is not in the alphabet", e.Symbol, e.Position)
	}
	return fmt.Sprintf("dfa: no transition from state %q on symbol %q (input position %d)", e.State, e.Symbol, e.Position)
}

// DecodeKind enumerates syntactic failures while reading a document.
// Semantic failures surface as *ValidationError from New instead.
type DecodeKind int

const (
	MissingField DecodeKind = iota
	WrongType
	MalformedTransitionKey
)

// DecodeError reports where a persisted document is syntactically broken.
type DecodeError struct {
	Kind     DecodeKind
	Field    string // offending field for MissingField/WrongType
	Expected string // expected shape for WrongType
	Raw      string // raw transition key for MalformedTransitionKey
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("dfa: document is missing required field %q", e.Field)
	case WrongType:
		return fmt.Sprintf("dfa: document field %q is not %s", e.Field, e.Expected)
	}
	return fmt.Sprintf("dfa: malformed transition key %q (want \"state,symbol\")", e.Raw)
}
