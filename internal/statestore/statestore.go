// Package statestore holds short-lived OAuth2 login state: the PKCE code
// verifier keyed by the opaque state value round-tripped through Twitter.
// Entries expire on their own; a completed login deletes them eagerly.
package statestore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStateNotFound means the state value was never issued or has expired.
var ErrStateNotFound = errors.New("login state not found")

// Store tracks pending OAuth2 login attempts.
type Store interface {
	Put(ctx context.Context, state, codeVerifier string) error
	Get(ctx context.Context, state string) (string, error)
	Delete(ctx context.Context, state string) error
}

// New returns a Redis-backed store, or an in-memory fallback plus the
// connection error when Redis is unreachable.
func New(addr, pass string, db int, ttl time.Duration) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return newMemoryStore(ttl), err
	}

	return &redisStore{client: client, prefix: "oauth_state", ttl: ttl}, nil
}

type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (s *redisStore) Put(ctx context.Context, state, codeVerifier string) error {
	return s.client.Set(ctx, s.prefix+":"+state, codeVerifier, s.ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, state string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+":"+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrStateNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisStore) Delete(ctx context.Context, state string) error {
	return s.client.Del(ctx, s.prefix+":"+state).Err()
}

type memoryEntry struct {
	codeVerifier string
	expiresAt    time.Time
}

type memoryStore struct {
	mu     sync.Mutex
	items  map[string]memoryEntry
	ttl    time.Duration
	nextGC time.Time
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	now := time.Now()
	return &memoryStore{
		items:  make(map[string]memoryEntry),
		ttl:    ttl,
		nextGC: now.Add(ttl),
	}
}

func (s *memoryStore) Put(_ context.Context, state, codeVerifier string) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[state] = memoryEntry{codeVerifier: codeVerifier, expiresAt: now.Add(s.ttl)}
	if now.After(s.nextGC) {
		for k, e := range s.items {
			if e.expiresAt.Before(now) {
				delete(s.items, k)
			}
		}
		s.nextGC = now.Add(s.ttl)
	}

	return nil
}

func (s *memoryStore) Get(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[state]
	if !ok || entry.expiresAt.Before(time.Now()) {
		return "", ErrStateNotFound
	}
	return entry.codeVerifier, nil
}

func (s *memoryStore) Delete(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, state)
	return nil
}
