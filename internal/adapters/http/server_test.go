package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fsmlab/dfakit/internal/logging"
	"github.com/fsmlab/dfakit/internal/metrics"
	"github.com/fsmlab/dfakit/pkg/adapters/memory"
)

const evenAsDoc = `{
	"states": ["q0", "q1"],
	"alphabet": ["a", "b"],
	"transitions": {
		"q0,a": "q1",
		"q0,b": "q0",
		"q1,a": "q0",
		"q1,b": "q1"
	},
	"start_state": "q0",
	"final_states": ["q0"]
}`

func newTestHandler() http.Handler {
	m := metrics.New(prometheus.NewRegistry())
	return NewHandler(memory.NewStore(), m, logging.NewNop())
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v (%s)", err, w.Body.String())
	}
	return body
}

func TestValidate_OK(t *testing.T) {
	h := newTestHandler()
	w := doJSON(t, h, "POST", "/validate", evenAsDoc)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["valid"] != true {
		t.Errorf("expected valid=true, got %v", body["valid"])
	}
	if body["complete"] != true {
		t.Errorf("expected complete=true, got %v", body["complete"])
	}
}

func TestValidate_InvalidDocument(t *testing.T) {
	h := newTestHandler()
	doc := `{"states": ["q0"], "alphabet": ["a"], "transitions": {}, "start_state": "missing"}`
	w := doJSON(t, h, "POST", "/validate", doc)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["valid"] != false {
		t.Errorf("expected valid=false, got %v", body["valid"])
	}
}

func TestSimulate(t *testing.T) {
	h := newTestHandler()

	cases := []struct {
		input    string
		accepted bool
	}{
		{"aa", true},
		{"aaa", false},
		{"", true},
		{"bab", false},
	}
	for _, tc := range cases {
		req := fmt.Sprintf(`{"automaton": %s, "input": %q}`, evenAsDoc, tc.input)
		w := doJSON(t, h, "POST", "/simulate", req)
		if w.Code != http.StatusOK {
			t.Fatalf("input %q: expected 200, got %d: %s", tc.input, w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["accepted"] != tc.accepted {
			t.Errorf("input %q: expected accepted=%v, got %v", tc.input, tc.accepted, body["accepted"])
		}
	}
}

func TestSimulate_SymbolNotInAlphabet(t *testing.T) {
	h := newTestHandler()
	req := fmt.Sprintf(`{"automaton": %s, "input": "ac"}`, evenAsDoc)
	w := doJSON(t, h, "POST", "/simulate", req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["position"] != float64(1) {
		t.Errorf("expected position 1, got %v", body["position"])
	}
}

func TestTrace_PartialOnError(t *testing.T) {
	h := newTestHandler()
	// q1 has no transition on "a"; a halt mid-run still reports the
	// steps taken so far.
	doc := `{
		"states": ["q0", "q1"],
		"alphabet": ["a"],
		"transitions": {"q0,a": "q1"},
		"start_state": "q0",
		"final_states": ["q1"]
	}`
	req := fmt.Sprintf(`{"automaton": %s, "input": "aa"}`, doc)
	w := doJSON(t, h, "POST", "/trace", req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	steps, ok := body["steps"].([]any)
	if !ok {
		t.Fatalf("expected steps array, got %T", body["steps"])
	}
	if len(steps) != 2 {
		t.Errorf("expected 2 steps (initial + first move), got %d", len(steps))
	}
	if body["accepted"] != false {
		t.Errorf("expected accepted=false, got %v", body["accepted"])
	}
	if _, ok := body["error"]; !ok {
		t.Error("expected error field in partial trace")
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, "POST", "/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := decodeBody(t, w)["id"].(string)
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	base := "/sessions/" + id

	for _, name := range []string{"q0", "q1"} {
		w = doJSON(t, h, "POST", base+"/states", fmt.Sprintf(`{"name": %q}`, name))
		if w.Code != http.StatusOK {
			t.Fatalf("add state %s: got %d: %s", name, w.Code, w.Body.String())
		}
	}
	for _, sym := range []string{"a", "b"} {
		w = doJSON(t, h, "POST", base+"/symbols", fmt.Sprintf(`{"symbol": %q}`, sym))
		if w.Code != http.StatusOK {
			t.Fatalf("add symbol %s: got %d", sym, w.Code)
		}
	}
	transitions := []string{
		`{"from": "q0", "symbol": "a", "to": "q1"}`,
		`{"from": "q0", "symbol": "b", "to": "q0"}`,
		`{"from": "q1", "symbol": "a", "to": "q0"}`,
		`{"from": "q1", "symbol": "b", "to": "q1"}`,
	}
	for _, tr := range transitions {
		w = doJSON(t, h, "PUT", base+"/transitions", tr)
		if w.Code != http.StatusOK {
			t.Fatalf("set transition %s: got %d: %s", tr, w.Code, w.Body.String())
		}
	}
	w = doJSON(t, h, "PUT", base+"/start", `{"state": "q0"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("set start: got %d", w.Code)
	}
	w = doJSON(t, h, "POST", base+"/finals", `{"state": "q0"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add final: got %d", w.Code)
	}

	w = doJSON(t, h, "GET", base+"/report", "")
	if w.Code != http.StatusOK {
		t.Fatalf("report: got %d", w.Code)
	}
	report := decodeBody(t, w)
	if missing, _ := report["missing_transitions"].([]any); len(missing) != 0 {
		t.Errorf("expected no missing transitions, got %v", missing)
	}

	w = doJSON(t, h, "POST", base+"/finalize", "")
	if w.Code != http.StatusOK {
		t.Fatalf("finalize: got %d: %s", w.Code, w.Body.String())
	}
	doc := decodeBody(t, w)
	if doc["start_state"] != "q0" {
		t.Errorf("expected exported start_state q0, got %v", doc["start_state"])
	}

	w = doJSON(t, h, "DELETE", base, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d", w.Code)
	}
	w = doJSON(t, h, "GET", base, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestSession_UnknownReference(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, "POST", "/sessions", "")
	id := decodeBody(t, w)["id"].(string)
	base := "/sessions/" + id

	doJSON(t, h, "POST", base+"/states", `{"name": "q0"}`)

	w = doJSON(t, h, "PUT", base+"/transitions", `{"from": "q0", "symbol": "a", "to": "q0"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown symbol, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if msg, _ := body["error"].(string); !strings.Contains(msg, "symbol") {
		t.Errorf("expected symbol reference error, got %q", msg)
	}
}

func TestFinalize_IncompleteRequiresForce(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, "POST", "/sessions", "")
	id := decodeBody(t, w)["id"].(string)
	base := "/sessions/" + id

	doJSON(t, h, "POST", base+"/states", `{"name": "q0"}`)
	doJSON(t, h, "POST", base+"/symbols", `{"symbol": "a"}`)
	doJSON(t, h, "PUT", base+"/start", `{"state": "q0"}`)

	w = doJSON(t, h, "POST", base+"/finalize", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for incomplete draft, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, "POST", base+"/finalize", `{"force": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with force, got %d: %s", w.Code, w.Body.String())
	}
	doc := decodeBody(t, w)
	if finals, _ := doc["final_states"].([]any); len(finals) != 0 {
		t.Errorf("expected empty final_states, got %v", finals)
	}
}

func TestFinalize_ForceCannotBypassInvariants(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, "POST", "/sessions", "")
	id := decodeBody(t, w)["id"].(string)
	base := "/sessions/" + id

	doJSON(t, h, "POST", base+"/states", `{"name": "q0"}`)
	doJSON(t, h, "PUT", base+"/start", `{"state": "q0"}`)

	// No alphabet: a hard invariant, not a completeness warning.
	w = doJSON(t, h, "POST", base+"/finalize", `{"force": true}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSession_NotFound(t *testing.T) {
	h := newTestHandler()
	w := doJSON(t, h, "GET", "/sessions/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler()
	w := doJSON(t, h, "GET", "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
