package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsmlab/dfakit/pkg/adapters/redis"
	"github.com/fsmlab/dfakit/pkg/builder"
	"github.com/fsmlab/dfakit/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunSessionStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	s := builder.NewSession()
	s.AddState("q0")
	require.NoError(t, store.Save(ctx, "ttl-session", s.Snapshot()))

	_, err := store.Load(ctx, "ttl-session")
	require.NoError(t, err)

	// miniredis advances expiry via FastForward instead of wall time.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "ttl-session")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newTestStore(t, redis.WithPrefix("custom:"))
	ctx := context.Background()

	s := builder.NewSession()
	s.AddState("q0")
	require.NoError(t, store.Save(ctx, "p1", s.Snapshot()))

	assert.True(t, mr.Exists("custom:p1"), "draft should be stored under the custom prefix")
}
