package automaton

import (
	"errors"
	"testing"
)

func TestAccepts_EvenAs(t *testing.T) {
	a := evenAs(t)

	cases := []struct {
		input string
		want  bool
	}{
		{"aa", true},
		{"aaa", false},
		{"", true},
		{"bbb", true},
		{"ab", false},
		{"abab", true},
	}
	for _, tc := range cases {
		t.Run("input "+tc.input, func(t *testing.T) {
			got, err := a.Accepts(SplitInput(tc.input))
			if err != nil {
				t.Fatalf("Accepts(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Accepts(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestAccepts_SymbolNotInAlphabet(t *testing.T) {
	a := evenAs(t)

	_, err := a.Accepts(SplitInput("ac"))
	var eerr *EvalError
	if !errors.As(err, &eerr) {
		t.Fatalf("error is %T, want *EvalError", err)
	}
	if eerr.Kind != SymbolNotInAlphabet {
		t.Errorf("Kind = %d, want SymbolNotInAlphabet", eerr.Kind)
	}
	if eerr.Symbol != "c" || eerr.Position != 1 {
		t.Errorf("got symbol %q at position %d, want c at 1", eerr.Symbol, eerr.Position)
	}
}

func TestAccepts_UndefinedTransition(t *testing.T) {
	a, err := New(
		[]State{"q0", "q1"},
		[]Symbol{"a", "b"},
		map[Key]State{{State: "q0", Symbol: "a"}: "q1"},
		"q0",
		[]State{"q1"},
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = a.Accepts(SplitInput("ab"))
	var eerr *EvalError
	if !errors.As(err, &eerr) {
		t.Fatalf("error is %T, want *EvalError", err)
	}
	if eerr.Kind != UndefinedTransition {
		t.Errorf("Kind = %d, want UndefinedTransition", eerr.Kind)
	}
	if eerr.State != "q1" || eerr.Symbol != "b" || eerr.Position != 1 {
		t.Errorf("got (%q, %q, %d), want (q1, b, 1)", eerr.State, eerr.Symbol, eerr.Position)
	}
}

func TestTrace_EvenAs(t *testing.T) {
	a := evenAs(t)

	res := a.Trace(SplitInput("aa"))
	if res.Err != nil {
		t.Fatalf("Trace(aa) failed: %v", res.Err)
	}
	if len(res.Steps) != 3 {
		t.Fatalf("Trace(aa) produced %d steps, want 3", len(res.Steps))
	}

	initial := res.Steps[0]
	if initial.Symbol != "" || initial.From != "q0" || initial.To != "q0" {
		t.Errorf("initial step wrong: %+v", initial)
	}
	if len(initial.Processed) != 0 || len(initial.Remaining) != 2 {
		t.Errorf("initial step input bookkeeping wrong: %+v", initial)
	}

	mid := res.Steps[1]
	if mid.Symbol != "a" || mid.From != "q0" || mid.To != "q1" || mid.Terminal {
		t.Errorf("step 1 wrong: %+v", mid)
	}

	last := res.Steps[2]
	if !last.Terminal || !last.Accepted || last.To != "q0" {
		t.Errorf("terminal step wrong: %+v", last)
	}
	if !res.Accepted {
		t.Error("result should be accepted")
	}
	if res.Final() != "q0" {
		t.Errorf("Final() = %q, want q0", res.Final())
	}
}

func TestTrace_EmptyInput(t *testing.T) {
	a := evenAs(t)

	res := a.Trace(nil)
	if res.Err != nil {
		t.Fatalf("Trace() failed: %v", res.Err)
	}
	if len(res.Steps) != 1 {
		t.Fatalf("empty input should yield a single initial step, got %d", len(res.Steps))
	}
	if !res.Steps[0].Terminal || !res.Steps[0].Accepted {
		t.Errorf("initial step should carry the verdict: %+v", res.Steps[0])
	}
}

func TestTrace_PartialOnFailure(t *testing.T) {
	a, err := New(
		[]State{"q0", "q1"},
		[]Symbol{"a", "b"},
		map[Key]State{{State: "q0", Symbol: "a"}: "q1"},
		"q0",
		nil,
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// Failure at position 1: expect initial step + 1 consumed symbol.
	res := a.Trace(SplitInput("ab"))
	if res.Err == nil {
		t.Fatal("Trace should fail on the undefined transition")
	}
	if res.Err.Kind != UndefinedTransition || res.Err.Position != 1 {
		t.Errorf("Err = %+v, want UndefinedTransition at position 1", res.Err)
	}
	if len(res.Steps) != 2 {
		t.Errorf("partial trace has %d steps, want 2", len(res.Steps))
	}
	if res.Accepted {
		t.Error("failed trace must not be accepted")
	}
	for _, s := range res.Steps {
		if s.Terminal {
			t.Error("no step of a failed trace is terminal")
		}
	}
}

func TestAcceptsTraceAgree(t *testing.T) {
	a := evenAs(t)
	inputs := []string{"", "a", "b", "aa", "ab", "ba", "bb", "aab", "abab", "bbbba"}

	for _, in := range inputs {
		accepted, err := a.Accepts(SplitInput(in))
		if err != nil {
			t.Fatalf("Accepts(%q) failed: %v", in, err)
		}
		res := a.Trace(SplitInput(in))
		if res.Err != nil {
			t.Fatalf("Trace(%q) failed: %v", in, res.Err)
		}
		if res.Accepted != accepted {
			t.Errorf("verdicts disagree for %q: accepts=%v trace=%v", in, accepted, res.Accepted)
		}
		if a.IsFinal(res.Final()) != accepted {
			t.Errorf("trace final state inconsistent for %q", in)
		}
	}
}

func TestEval_Deterministic(t *testing.T) {
	a := evenAs(t)
	input := SplitInput("abba")

	first := a.Trace(input)
	for i := 0; i < 10; i++ {
		again := a.Trace(input)
		if len(again.Steps) != len(first.Steps) || again.Accepted != first.Accepted {
			t.Fatalf("run %d differs from first run", i)
		}
		for j := range first.Steps {
			if again.Steps[j].To != first.Steps[j].To {
				t.Fatalf("run %d step %d differs", i, j)
			}
		}
	}
}

func TestTrace_Path(t *testing.T) {
	a := evenAs(t)
	res := a.Trace(SplitInput("ab"))
	path := res.Path()
	want := []State{"q0", "q1", "q1"}
	if len(path) != len(want) {
		t.Fatalf("Path() = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("Path()[%d] = %q, want %q", i, path[i], want[i])
		}
	}
}
