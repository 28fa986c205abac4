package statestore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, err := New(mr.Addr(), "", 0, 10*time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "state1", "verifier1"))

	got, err := store.Get(ctx, "state1")
	require.NoError(t, err)
	assert.Equal(t, "verifier1", got)

	require.NoError(t, store.Delete(ctx, "state1"))
	_, err = store.Get(ctx, "state1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, err := New(mr.Addr(), "", 0, time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "state1", "verifier1"))

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, "state1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryFallback(t *testing.T) {
	ctx := context.Background()

	// Nothing listens here; New must hand back a working in-memory store
	// along with the connection error.
	store, err := New("127.0.0.1:1", "", 0, 10*time.Minute)
	require.Error(t, err)
	require.NotNil(t, store)

	require.NoError(t, store.Put(ctx, "state1", "verifier1"))
	got, err := store.Get(ctx, "state1")
	require.NoError(t, err)
	assert.Equal(t, "verifier1", got)

	require.NoError(t, store.Delete(ctx, "state1"))
	_, err = store.Get(ctx, "state1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(time.Millisecond)

	require.NoError(t, store.Put(ctx, "state1", "verifier1"))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "state1")
	assert.ErrorIs(t, err, ErrStateNotFound)
}
