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

func TestWatchForcesSignOutOnExpiry(t *testing.T) {
	payload := loginPayload(t, time.Now().Add(50*time.Millisecond))
	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(payload)
	})

	session, store := newTestSession(t, srv.URL)
	session.WithWatchInterval(20 * time.Millisecond)

	var expired atomic.Bool
	session.WithExpiredHandler(func() { expired.Store(true) })

	ctx := context.Background()
	require.NoError(t, session.SignIn(ctx, "amira", "s3cret-pass"))

	stop := session.Watch(ctx)
	defer stop()

	require.Eventually(t, func() bool {
		return session.State() == console.StateAnonymous
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, expired.Load())

	_, err := store.Get(ctx, console.StoreKeyAccessToken)
	assert.ErrorIs(t, err, console.ErrStoreKeyNotFound)
}

func TestWatchRefreshesSilentlyWhenPossible(t *testing.T) {
	payload := loginPayload(t, time.Now().Add(50*time.Millisecond))
	fresh := signedToken(t, time.Now().Add(time.Hour))
	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			json.NewEncoder(w).Encode(map[string]string{"access": fresh})
			return
		}
		json.NewEncoder(w).Encode(payload)
	})

	session, store := newTestSession(t, srv.URL)
	session.WithWatchInterval(20 * time.Millisecond)

	var expired atomic.Bool
	session.WithExpiredHandler(func() { expired.Store(true) })

	ctx := context.Background()
	require.NoError(t, session.SignIn(ctx, "amira", "s3cret-pass"))

	stop := session.Watch(ctx)
	defer stop()

	require.Eventually(t, func() bool {
		access, err := store.Get(ctx, console.StoreKeyAccessToken)
		return err == nil && access == fresh
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, session.Authenticated())
	assert.False(t, expired.Load())
}

func TestWatchStopsWhenSessionEnds(t *testing.T) {
	payload := loginPayload(t, time.Now().Add(time.Hour))
	srv := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	})

	session, _ := newTestSession(t, srv.URL)
	session.WithWatchInterval(10 * time.Millisecond)

	ctx := context.Background()
	require.NoError(t, session.SignIn(ctx, "amira", "s3cret-pass"))

	stop := session.Watch(ctx)
	session.SignOut(ctx)

	// The watcher notices the anonymous state and exits on its own;
	// calling stop afterwards stays safe.
	time.Sleep(50 * time.Millisecond)
	stop()
	assert.Equal(t, console.StateAnonymous, session.State())
}
