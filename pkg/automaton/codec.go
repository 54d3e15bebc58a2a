package automaton

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// keyDelimiter joins state and symbol in wire transition keys.
// Documented restriction: states and symbols must not contain it.
const keyDelimiter = ","

// Document is the wire representation shared with external tooling
// (GUI builders, visualizers). Field names and the "state,symbol"
// transition keys are a compatibility contract.
type Document struct {
	States      []string          `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet    []string          `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Transitions map[string]string `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
	StartState  string            `json:"start_state" yaml:"start_state" mapstructure:"start_state"`
	FinalStates []string          `json:"final_states" yaml:"final_states" mapstructure:"final_states"`
}

// NewDocument builds the canonical document for a valid automaton:
// lists and transition keys come out sorted, so encoding is
// deterministic. It fails if any state or symbol contains the key
// delimiter, which the wire format cannot represent unambiguously.
func NewDocument(a *Automaton) (*Document, error) {
	for _, s := range a.states {
		if strings.Contains(string(s), keyDelimiter) {
			return nil, fmt.Errorf("dfa: state %q contains the transition key delimiter %q", s, keyDelimiter)
		}
	}
	for _, sym := range a.alphabet {
		if strings.Contains(string(sym), keyDelimiter) {
			return nil, fmt.Errorf("dfa: symbol %q contains the transition key delimiter %q", sym, keyDelimiter)
		}
	}

	doc := &Document{
		States:      make([]string, 0, len(a.states)),
		Alphabet:    make([]string, 0, len(a.alphabet)),
		Transitions: make(map[string]string, len(a.delta)),
		StartState:  string(a.start),
		FinalStates: make([]string, 0, len(a.finals)),
	}
	for _, s := range a.states {
		doc.States = append(doc.States, string(s))
	}
	for _, sym := range a.alphabet {
		doc.Alphabet = append(doc.Alphabet, string(sym))
	}
	for k, v := range a.delta {
		doc.Transitions[string(k.State)+keyDelimiter+string(k.Symbol)] = string(v)
	}
	for _, f := range a.Finals() {
		doc.FinalStates = append(doc.FinalStates, string(f))
	}
	return doc, nil
}

// Automaton converts the document into a validated Automaton.
// Malformed transition keys are a decode concern (*DecodeError); once
// the shapes are right, New's validation errors propagate unchanged.
func (d *Document) Automaton() (*Automaton, error) {
	states := make([]State, 0, len(d.States))
	for _, s := range d.States {
		states = append(states, State(s))
	}
	alphabet := make([]Symbol, 0, len(d.Alphabet))
	for _, s := range d.Alphabet {
		alphabet = append(alphabet, Symbol(s))
	}

	delta := make(map[Key]State, len(d.Transitions))
	// Split on the FIRST delimiter only: symbols must not contain the
	// delimiter, state names come before it.
	for raw, target := range d.Transitions {
		state, symbol, ok := strings.Cut(raw, keyDelimiter)
		if !ok || state == "" || symbol == "" {
			return nil, &DecodeError{Kind: MalformedTransitionKey, Raw: raw}
		}
		delta[Key{State: State(state), Symbol: Symbol(symbol)}] = State(target)
	}

	finals := make([]State, 0, len(d.FinalStates))
	for _, f := range d.FinalStates {
		finals = append(finals, State(f))
	}
	return New(states, alphabet, delta, State(d.StartState), finals)
}

// requiredFields drive the field-by-field decode below; final_states is
// deliberately absent (it defaults to empty).
var requiredFields = []string{"states", "alphabet", "transitions", "start_state"}

// ParseDocument reads the wire JSON into a Document, reporting precise
// per-field errors: MissingField for absent required fields, WrongType
// when a field is present with the wrong JSON shape. Whitespace and
// indentation are irrelevant.
func ParseDocument(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Kind: WrongType, Field: "(document)", Expected: "a JSON object"}
	}
	for _, name := range requiredFields {
		if _, ok := raw[name]; !ok {
			return nil, &DecodeError{Kind: MissingField, Field: name}
		}
	}

	doc := &Document{}
	if err := json.Unmarshal(raw["states"], &doc.States); err != nil {
		return nil, &DecodeError{Kind: WrongType, Field: "states", Expected: "an array of strings"}
	}
	if err := json.Unmarshal(raw["alphabet"], &doc.Alphabet); err != nil {
		return nil, &DecodeError{Kind: WrongType, Field: "alphabet", Expected: "an array of strings"}
	}
	if err := json.Unmarshal(raw["transitions"], &doc.Transitions); err != nil {
		return nil, &DecodeError{Kind: WrongType, Field: "transitions", Expected: "an object of string to string"}
	}
	if err := json.Unmarshal(raw["start_state"], &doc.StartState); err != nil {
		return nil, &DecodeError{Kind: WrongType, Field: "start_state", Expected: "a string"}
	}
	if msg, ok := raw["final_states"]; ok {
		if err := json.Unmarshal(msg, &doc.FinalStates); err != nil {
			return nil, &DecodeError{Kind: WrongType, Field: "final_states", Expected: "an array of strings"}
		}
	}
	return doc, nil
}

// Decode parses and validates a persisted automaton document.
func Decode(data []byte) (*Automaton, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Automaton()
}

// DecodeFrom reads a complete document from r and decodes it.
func DecodeFrom(r io.Reader) (*Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dfa: reading document: %w", err)
	}
	return Decode(data)
}

// Encode produces the canonical pretty-printed JSON document.
// Since the Automaton was validated at construction, the output always
// decodes back to an equal automaton.
func Encode(a *Automaton) ([]byte, error) {
	doc, err := NewDocument(a)
	if err != nil {
		return nil, err
	}
	// encoding/json already sorts map keys; keep two-space indent for
	// the hand-editable files the GUI tools exchange.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("dfa: encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the canonical document to w.
func EncodeTo(w io.Writer, a *Automaton) error {
	data, err := Encode(a)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("dfa: writing document: %w", err)
	}
	return nil
}
