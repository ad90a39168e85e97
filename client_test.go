package console_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	console "github.com/goliatone/go-console"
)

func newAuthedClient(t *testing.T, baseURL string) (*console.Client, *console.MemoryStore) {
	t.Helper()
	store := console.NewMemoryStore()
	client := console.NewClient(baseURL, time.Second)
	tokens := console.NewTokenLifecycle(store, client)
	client.WithTokenLifecycle(tokens)
	return client, store
}

func TestDoAttachesBearerToken(t *testing.T) {
	access := signedToken(t, time.Now().Add(time.Hour))

	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+access, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	})

	client, store := newAuthedClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, console.StoreKeyAccessToken, access))

	resp, err := client.Get(ctx, "/events/")
	require.NoError(t, err)
	assert.True(t, resp.OK())

	out := map[string]string{}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "yes", out["ok"])
}

func TestDoWithoutTokenFailsAndForcesSignOut(t *testing.T) {
	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend")
	})

	client, _ := newAuthedClient(t, srv.URL)

	var signedOut atomic.Bool
	client.WithAuthFailedHandler(func() { signedOut.Store(true) })

	_, err := client.Get(context.Background(), "/events/")
	assert.ErrorIs(t, err, console.ErrNotAuthenticated)
	assert.True(t, signedOut.Load())
}

func TestDoRetriesOnceAfterRefresh(t *testing.T) {
	staleAccess := signedToken(t, time.Now().Add(time.Hour))
	freshAccess := signedToken(t, time.Now().Add(2*time.Hour))

	var calls atomic.Int32
	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh/":
			json.NewEncoder(w).Encode(map[string]string{"access": freshAccess, "refresh": "refresh-2"})
		case "/events/":
			if calls.Add(1) == 1 {
				// Locally valid, revoked server-side.
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.Equal(t, "Bearer "+freshAccess, r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode([]map[string]any{})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	client, store := newAuthedClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, console.StoreKeyAccessToken, staleAccess))
	require.NoError(t, store.Set(ctx, console.StoreKeyRefreshToken, "refresh-1"))

	resp, err := client.Get(ctx, "/events/")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, int32(2), calls.Load())

	// Rotated refresh token was persisted.
	refresh, err := store.Get(ctx, console.StoreKeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", refresh)
}

func TestDoSecondUnauthorizedExhaustsBudget(t *testing.T) {
	access := signedToken(t, time.Now().Add(time.Hour))

	var calls atomic.Int32
	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh/":
			json.NewEncoder(w).Encode(map[string]string{"access": access})
		default:
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	client, store := newAuthedClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, console.StoreKeyAccessToken, access))
	require.NoError(t, store.Set(ctx, console.StoreKeyRefreshToken, "refresh-1"))

	var signedOut atomic.Bool
	client.WithAuthFailedHandler(func() { signedOut.Store(true) })

	_, err := client.Get(ctx, "/events/")
	assert.True(t, console.IsTokenExpired(err))
	assert.True(t, signedOut.Load())
	assert.Equal(t, int32(2), calls.Load(), "exactly one retry")
}

func TestDoRefreshRejectionForcesSignOut(t *testing.T) {
	access := signedToken(t, time.Now().Add(time.Hour))

	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, store := newAuthedClient(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, console.StoreKeyAccessToken, access))
	require.NoError(t, store.Set(ctx, console.StoreKeyRefreshToken, "refresh-1"))

	var signedOut atomic.Bool
	client.WithAuthFailedHandler(func() { signedOut.Store(true) })

	_, err := client.Get(ctx, "/events/")
	assert.True(t, console.IsTokenExpired(err))
	assert.True(t, signedOut.Load())
}

func TestLoginDefaultsRejectionMessage(t *testing.T) {
	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := console.NewClient(srv.URL, time.Second)

	_, err := client.Login(context.Background(), "amira", "wrong")
	require.Error(t, err)
	assert.True(t, console.IsCredentialRejected(err))
	assert.Contains(t, err.Error(), "Login failed")
}

func TestRefreshTokensRequiresAccessInResponse(t *testing.T) {
	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})

	client := console.NewClient(srv.URL, time.Second)

	_, _, err := client.RefreshTokens(context.Background(), "refresh-1")
	require.Error(t, err)
}
