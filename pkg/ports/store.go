package ports

import (
	"context"
	"errors"

	"github.com/fsmlab/dfakit/pkg/builder"
)

// ErrSessionNotFound is returned when a session ID cannot be found in
// the store.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists builder drafts keyed by session ID. It stores
// snapshots, not live Sessions: a draft is owned by one editing
// workflow at a time, the store only parks it between requests.
type SessionStore interface {
	// Save persists the draft for a given session ID.
	Save(ctx context.Context, sessionID string, draft builder.Draft) error

	// Load retrieves the draft for a given session ID.
	// Returns ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (builder.Draft, error)

	// Delete removes the draft for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
