package console

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Store is the persisted key-value state shared by the session core:
// credential, profile, token pair, language, and translation overrides.
// Implementations must return ErrStoreKeyNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Reset removes every key owned by the console namespace.
	Reset(ctx context.Context) error
}

// Config holds console options
type Config interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetWatchInterval() time.Duration
	GetStorePath() string
	GetKeyringService() string
	GetDefaultLanguage() Language
}

// TokenRefresher mints a new access token (and optionally a rotated
// refresh token) from a refresh token.
type TokenRefresher interface {
	RefreshTokens(ctx context.Context, refreshToken string) (access string, refresh string, err error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CONSOLE "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] CONSOLE "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CONSOLE "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CONSOLE "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
