// Package redis provides a Redis-backed SessionStore for deployments
// where draft sessions must survive process restarts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/fsmlab/dfakit/pkg/builder"
	"github.com/fsmlab/dfakit/pkg/ports"
)

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration for stored drafts. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix for stored drafts.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Redis store connecting to the given address.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "dfakit:session:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(sessionID string) string { return s.prefix + sessionID }

func (s *Store) indexKey() string { return s.prefix + "index" }

// Save persists the draft as JSON and tracks the ID in a set index.
func (s *Store) Save(ctx context.Context, sessionID string, draft builder.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sessionID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save draft to redis: %w", err)
	}
	return nil
}

// Load retrieves and unmarshals the draft.
func (s *Store) Load(ctx context.Context, sessionID string) (builder.Draft, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return builder.Draft{}, ports.ErrSessionNotFound
		}
		return builder.Draft{}, fmt.Errorf("load draft from redis: %w", err)
	}

	var draft builder.Draft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		return builder.Draft{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return draft, nil
}

// Delete removes the draft and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.SRem(ctx, s.indexKey(), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete draft from redis: %w", err)
	}
	return nil
}

// List returns the indexed session IDs. Expired drafts may linger in
// the index until deleted; Load still reports them as not found.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions from redis: %w", err)
	}
	return ids, nil
}
