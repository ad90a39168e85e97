package console

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenLifecycle owns the persisted access/refresh token pair: it
// decides expiry, performs transparent refresh, and is the only
// component that writes the token fields.
//
// Tokens are minted by the backend and opaque to the console; only the
// exp claim of the payload segment is inspected, without signature
// verification. Every decode ambiguity resolves to "expired" so a
// broken token can never grant access.
type TokenLifecycle struct {
	store     Store
	refresher TokenRefresher
	logger    Logger
	now       func() time.Time
}

// NewTokenLifecycle returns a lifecycle manager backed by the given
// store and refresh endpoint.
func NewTokenLifecycle(store Store, refresher TokenRefresher) *TokenLifecycle {
	return &TokenLifecycle{
		store:     store,
		refresher: refresher,
		logger:    defLogger{},
		now:       time.Now,
	}
}

func (t *TokenLifecycle) WithLogger(logger Logger) *TokenLifecycle {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// WithClock injects a custom clock (useful for tests).
func (t *TokenLifecycle) WithClock(clock func() time.Time) *TokenLifecycle {
	if clock != nil {
		t.now = clock
	}
	return t
}

// TokenExpiry decodes the exp claim of a raw token without verifying
// its signature. Malformed tokens and tokens without an exp claim are
// reported as errors.
func TokenExpiry(raw string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrTokenMalformed
	}
	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether the persisted access token is expired.
// A missing or undecodable token counts as expired.
func (t *TokenLifecycle) IsExpired(ctx context.Context) bool {
	raw, err := t.store.Get(ctx, StoreKeyAccessToken)
	if err != nil || raw == "" {
		return true
	}

	exp, err := TokenExpiry(raw)
	if err != nil {
		t.logger.Debug("access token failed to decode, treating as expired: %v", err)
		return true
	}

	// Seconds granularity, matching the exp claim's resolution.
	return exp.Unix() < t.now().Unix()
}

// Refresh exchanges the persisted refresh token for a new access
// token. Returns false without side effects when no refresh token is
// stored or the backend rejects the exchange. A rotated refresh token,
// when returned, replaces the stored one.
func (t *TokenLifecycle) Refresh(ctx context.Context) bool {
	refresh, err := t.store.Get(ctx, StoreKeyRefreshToken)
	if err != nil || refresh == "" {
		return false
	}

	access, rotated, err := t.refresher.RefreshTokens(ctx, refresh)
	if err != nil {
		t.logger.Info("token refresh failed: %v", err)
		return false
	}

	if err := t.store.Set(ctx, StoreKeyAccessToken, access); err != nil {
		t.logger.Error("failed to persist refreshed access token: %v", err)
		return false
	}

	if rotated != "" {
		if err := t.store.Set(ctx, StoreKeyRefreshToken, rotated); err != nil {
			t.logger.Error("failed to persist rotated refresh token: %v", err)
			return false
		}
	}

	return true
}

// EnsureValid guarantees a usable access token: nil when the stored
// token is valid or was silently refreshed, ErrNotAuthenticated when
// no token exists, ErrTokenExpired when refresh is impossible.
func (t *TokenLifecycle) EnsureValid(ctx context.Context) error {
	raw, err := t.store.Get(ctx, StoreKeyAccessToken)
	if err != nil || raw == "" {
		return ErrNotAuthenticated
	}

	if !t.IsExpired(ctx) {
		return nil
	}

	if t.Refresh(ctx) {
		return nil
	}
	return ErrTokenExpired
}

// AccessToken returns the persisted access token, if any.
func (t *TokenLifecycle) AccessToken(ctx context.Context) (string, error) {
	return t.store.Get(ctx, StoreKeyAccessToken)
}
