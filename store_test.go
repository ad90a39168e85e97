package console_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	console "github.com/goliatone/go-console"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := console.NewMemoryStore()

	require.NoError(t, store.Set(ctx, console.StoreKeyAccessToken, "access-1"))

	val, err := store.Get(ctx, console.StoreKeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access-1", val)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := console.NewMemoryStore()

	_, err := store.Get(context.Background(), console.StoreKeyUser)
	assert.ErrorIs(t, err, console.ErrStoreKeyNotFound)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := console.NewMemoryStore()

	require.NoError(t, store.Set(ctx, console.StoreKeyUser, "x"))
	require.NoError(t, store.Delete(ctx, console.StoreKeyUser))
	require.NoError(t, store.Delete(ctx, console.StoreKeyUser))

	_, err := store.Get(ctx, console.StoreKeyUser)
	assert.ErrorIs(t, err, console.ErrStoreKeyNotFound)
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := console.NewMemoryStore()

	for _, key := range console.StoreKeys() {
		require.NoError(t, store.Set(ctx, key, "v"))
	}
	require.NoError(t, store.Reset(ctx))

	for _, key := range console.StoreKeys() {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, console.ErrStoreKeyNotFound)
	}
}

func TestBunStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	store, err := console.OpenBunStore(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Set(ctx, console.StoreKeyUser, `{"id":"7"}`))

	val, err := store.Get(ctx, console.StoreKeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"7"}`, val)

	// Upsert replaces the previous value.
	require.NoError(t, store.Set(ctx, console.StoreKeyUser, `{"id":"8"}`))
	val, err = store.Get(ctx, console.StoreKeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"8"}`, val)
}

func TestBunStoreMissingKey(t *testing.T) {
	ctx := context.Background()

	store, err := console.OpenBunStore(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.Get(ctx, console.StoreKeyProfile)
	assert.ErrorIs(t, err, console.ErrStoreKeyNotFound)
}

func TestBunStoreReset(t *testing.T) {
	ctx := context.Background()

	store, err := console.OpenBunStore(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, key := range console.StoreKeys() {
		require.NoError(t, store.Set(ctx, key, "v"))
	}
	require.NoError(t, store.Reset(ctx))

	for _, key := range console.StoreKeys() {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, console.ErrStoreKeyNotFound)
	}
}
