package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsmlab/dfakit/pkg/builder"
)

// RunSessionStoreContract verifies that a SessionStore implementation
// adheres to the interface contract. Adapter tests call it with a fresh
// store.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	draft := func() builder.Draft {
		s := builder.NewSession()
		s.AddState("q0")
		s.AddState("q1")
		s.AddSymbol("a")
		_ = s.SetTransition("q0", "a", "q1")
		_ = s.SetStart("q0")
		return s.Snapshot()
	}()

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, sessionID, draft)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, draft.States, loaded.States)
		assert.Equal(t, draft.Transitions, loaded.Transitions)
		assert.Equal(t, draft.StartState, loaded.StartState)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		updated := draft
		updated.StartState = "q1"
		require.NoError(t, store.Save(ctx, sessionID, updated))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "q1", loaded.StartState)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, draft))
		require.NoError(t, store.Delete(ctx, sessionID))

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, draft))
		require.NoError(t, store.Save(ctx, id2, draft))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
