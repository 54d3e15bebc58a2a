// Package http exposes the dfakit core over a JSON HTTP API: stateless
// evaluation endpoints plus a builder-session service backed by a
// SessionStore.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fsmlab/dfakit/internal/metrics"
	"github.com/fsmlab/dfakit/pkg/automaton"
	"github.com/fsmlab/dfakit/pkg/builder"
	"github.com/fsmlab/dfakit/pkg/ports"
)

// Server wires the core packages to the router. All automaton
// semantics stay in pkg; handlers only translate HTTP.
type Server struct {
	store   ports.SessionStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHandler builds the HTTP handler.
func NewHandler(store ports.SessionStore, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	s := &Server{store: store, metrics: m, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)

	r.Post("/validate", s.validate)
	r.Post("/simulate", s.simulate)
	r.Post("/trace", s.trace)
	r.Post("/graph", s.graph)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/states", s.addState)
			r.Delete("/states/{name}", s.removeState)
			r.Post("/symbols", s.addSymbol)
			r.Delete("/symbols/{symbol}", s.removeSymbol)
			r.Put("/transitions", s.setTransition)
			r.Delete("/transitions/{from}/{symbol}", s.removeTransition)
			r.Put("/start", s.setStart)
			r.Post("/finals", s.addFinal)
			r.Delete("/finals/{name}", s.removeFinal)
			r.Get("/report", s.report)
			r.Post("/finalize", s.finalize)
		})
	})

	return r
}

// -- stateless evaluation --

// evalRequest carries a full document plus the input string; symbols
// are single characters, matching the wire format's convention.
type evalRequest struct {
	Automaton json.RawMessage `json:"automaton"`
	Input     string          `json:"input"`
}

func (s *Server) decodeEvalRequest(w http.ResponseWriter, r *http.Request) (*automaton.Automaton, []automaton.Symbol, bool) {
	var req evalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return nil, nil, false
	}
	if len(req.Automaton) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("missing automaton document"))
		return nil, nil, false
	}
	a, err := automaton.Decode(req.Automaton)
	if err != nil {
		var derr *automaton.DecodeError
		if errors.As(err, &derr) {
			s.metrics.DecodeErrors.Inc()
		}
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return nil, nil, false
	}
	return a, automaton.SplitInput(req.Input), true
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var doc json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	a, err := automaton.Decode(doc)
	if err != nil {
		var derr *automaton.DecodeError
		if errors.As(err, &derr) {
			s.metrics.DecodeErrors.Inc()
		}
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"valid": false,
			"error": err.Error(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"valid":               true,
		"complete":            a.Complete(),
		"missing_transitions": a.MissingTransitions(),
		"has_final_states":    len(a.Finals()) > 0,
	})
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	a, input, ok := s.decodeEvalRequest(w, r)
	if !ok {
		return
	}
	accepted, err := a.Accepts(input)
	s.metrics.RecordVerdict(accepted, err)
	if err != nil {
		body := map[string]any{"error": err.Error()}
		var eerr *automaton.EvalError
		if errors.As(err, &eerr) {
			body["position"] = eerr.Position
		}
		s.writeJSON(w, http.StatusUnprocessableEntity, body)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"accepted": accepted})
}

func (s *Server) trace(w http.ResponseWriter, r *http.Request) {
	a, input, ok := s.decodeEvalRequest(w, r)
	if !ok {
		return
	}
	res := a.Trace(input)
	var traceErr error
	if res.Err != nil {
		traceErr = res.Err
	}
	s.metrics.RecordVerdict(res.Accepted, traceErr)

	body := map[string]any{
		"steps":    res.Steps,
		"accepted": res.Accepted,
	}
	if res.Err != nil {
		// Partial progress still ships; the error rides alongside.
		body["error"] = res.Err.Error()
		body["position"] = res.Err.Position
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	// The CLI owns diagram generation for files; this endpoint only
	// hands visualizers a decoded, canonical document back.
	var doc json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	a, err := automaton.Decode(doc)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	data, err := automaton.Encode(a)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// -- builder sessions --

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	if err := s.store.Save(r.Context(), id, builder.NewSession().Snapshot()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.updateSessionsGauge(r)
	s.logger.Info("session created", "session_id", id)
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"draft":  sess.Snapshot(),
		"report": sess.Report(),
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.updateSessionsGauge(r)
	w.WriteHeader(http.StatusNoContent)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) addState(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mutateSession(w, r, func(sess *builder.Session) error {
		sess.AddState(automaton.State(req.Name))
		return nil
	})
}

func (s *Server) removeState(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mutateSession(w, r, func(sess *builder.Session) error {
		sess.RemoveState(automaton.State(name))
		return nil
	})
}

type symbolRequest struct {
	Symbol string `json:"symbol"`
}

func (s *Server) addSymbol(w http.ResponseWriter, r *http.Request) {
	var req symbolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mutateSession(w, r, func(sess *builder.Session) error {
		sess.AddSymbol(automaton.Symbol(req.Symbol))
		return nil
	})
}

func (s *Server) removeSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	s.mutateSession(w, r, func(sess *builder.Session) error {
		sess.RemoveSymbol(automaton.Symbol(symbol))
		return nil
	})
}

type transitionRequest struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}

func (s *Server) setTransition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mutateSession(w, r, func(sess *builder.Session) error {
		return sess.SetTransition(automaton.State(req.From), automaton.Symbol(req.Symbol), automaton.State(req.To))
	})
}

func (s *Server) removeTransition(w http.ResponseWriter, r *http.Request) {
	from := chi.URLParam(r, "from")
	symbol := chi.URLParam(r, "symbol")
	s.mutateSession(w, r, func(sess *builder.Session) error {
		sess.RemoveTransition(automaton.State(from), automaton.Symbol(symbol))
		return nil
	})
}

type stateRequest struct {
	State string `json:"state"`
}

func (s *Server) setStart(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mutateSession(w, r, func(sess *builder.Session) error {
		return sess.SetStart(automaton.State(req.State))
	})
}

func (s *Server) addFinal(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mutateSession(w, r, func(sess *builder.Session) error {
		return sess.AddFinal(automaton.State(req.State))
	})
}

func (s *Server) removeFinal(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mutateSession(w, r, func(sess *builder.Session) error {
		sess.RemoveFinal(automaton.State(name))
		return nil
	})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Report())
}

type finalizeRequest struct {
	// Force acknowledges completeness warnings (missing transitions,
	// no final states). Hard invariants are never forceable.
	Force bool `json:"force"`
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	if rep := sess.Report(); !rep.Complete() && !req.Force {
		s.metrics.Finalized.WithLabelValues("incomplete").Inc()
		s.writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "draft is incomplete; retry with force to export anyway",
			"report": rep,
		})
		return
	}

	a, err := sess.Finalize()
	if err != nil {
		s.metrics.Finalized.WithLabelValues("invalid").Inc()
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	data, err := automaton.Encode(a)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.Finalized.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// -- helpers --

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*builder.Session, bool) {
	id := chi.URLParam(r, "id")
	draft, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			s.writeError(w, http.StatusNotFound, err)
		} else {
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return nil, false
	}
	sess, err := builder.FromDraft(draft)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return sess, true
}

// mutateSession runs one draft mutation inside a load/save cycle.
// Reference errors from the builder map to 422.
func (s *Server) mutateSession(w http.ResponseWriter, r *http.Request, mutate func(*builder.Session) error) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := mutate(sess); err != nil {
		var uerr *builder.UnknownReferenceError
		if errors.As(err, &uerr) {
			s.writeError(w, http.StatusUnprocessableEntity, err)
		} else {
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	if err := s.store.Save(r.Context(), chi.URLParam(r, "id"), sess.Snapshot()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"draft":  sess.Snapshot(),
		"report": sess.Report(),
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) updateSessionsGauge(r *http.Request) {
	if ids, err := s.store.List(r.Context()); err == nil {
		s.metrics.Sessions.Set(float64(len(ids)))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
