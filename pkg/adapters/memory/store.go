// Package memory provides the in-memory SessionStore used by tests and
// single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/fsmlab/dfakit/pkg/builder"
	"github.com/fsmlab/dfakit/pkg/ports"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]builder.Draft
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]builder.Draft)}
}

// Save persists the draft in memory. Drafts are value snapshots, so
// callers cannot mutate stored state through retained references.
func (s *Store) Save(ctx context.Context, sessionID string, draft builder.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copyDraft(draft)
	return nil
}

// Load retrieves the draft from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (builder.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.data[sessionID]
	if !ok {
		return builder.Draft{}, ports.ErrSessionNotFound
	}
	return copyDraft(draft), nil
}

// Delete removes the draft.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func copyDraft(d builder.Draft) builder.Draft {
	out := d
	out.States = append([]string{}, d.States...)
	out.Alphabet = append([]string{}, d.Alphabet...)
	out.Transitions = append([]builder.TransitionEntry{}, d.Transitions...)
	out.FinalStates = append([]string{}, d.FinalStates...)
	return out
}
