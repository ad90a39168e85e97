package console

import (
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

const textCodeInvalidTransition = "INVALID_SESSION_TRANSITION"

// ErrInvalidTransition is returned when a requested session state
// change is not allowed.
var ErrInvalidTransition = goerrors.New("invalid session state transition", goerrors.CategoryConflict).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeConflict)

// SessionState enumerates the authentication lifecycle.
type SessionState string

const (
	// StateAnonymous means no credential is loaded.
	StateAnonymous SessionState = "anonymous"
	// StateAuthenticating means a sign-in is in flight.
	StateAuthenticating SessionState = "authenticating"
	// StateAuthenticated means credential and profile are present.
	StateAuthenticated SessionState = "authenticated"
)

// sessionStateMachine centralizes the legal session transitions.
// Same-state transitions are no-ops, which is what makes repeated
// sign-out idempotent.
type sessionStateMachine struct {
	mu          sync.Mutex
	current     SessionState
	transitions map[SessionState]map[SessionState]struct{}
}

func newSessionStateMachine() *sessionStateMachine {
	return &sessionStateMachine{
		current: StateAnonymous,
		transitions: map[SessionState]map[SessionState]struct{}{
			StateAnonymous: {
				StateAuthenticating: {},
				// Restore() rebuilds a session from persisted state
				// without a network round-trip.
				StateAuthenticated: {},
			},
			StateAuthenticating: {
				StateAuthenticated: {},
				StateAnonymous:     {},
			},
			StateAuthenticated: {
				StateAnonymous: {},
			},
		},
	}
}

func (m *sessionStateMachine) state() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *sessionStateMachine) transition(target SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == target {
		return nil
	}

	if allowed, ok := m.transitions[m.current]; ok {
		if _, ok := allowed[target]; ok {
			m.current = target
			return nil
		}
	}

	return ErrInvalidTransition.WithMetadata(map[string]any{
		"from": m.current,
		"to":   target,
	})
}

// RefreshState enumerates the retry-after-refresh control flow used by
// the authenticated client: a 401 moves the request through an
// explicit refresh attempt with a budget of one retry.
type RefreshState string

const (
	RefreshStateUnauthenticated RefreshState = "unauthenticated"
	RefreshStateRefreshing      RefreshState = "refreshing"
	RefreshStateAuthenticated   RefreshState = "authenticated"
	RefreshStateFailed          RefreshState = "failed"
)

// refreshAttempt is the per-request refresh state machine. It is not
// shared between requests, so it needs no locking.
type refreshAttempt struct {
	state  RefreshState
	budget int
}

func newRefreshAttempt() *refreshAttempt {
	return &refreshAttempt{state: RefreshStateUnauthenticated, budget: 1}
}

// begin consumes one unit of retry budget and enters refreshing.
// Returns false when the budget is exhausted.
func (a *refreshAttempt) begin() bool {
	if a.budget <= 0 {
		a.state = RefreshStateFailed
		return false
	}
	a.budget--
	a.state = RefreshStateRefreshing
	return true
}

func (a *refreshAttempt) succeed() {
	a.state = RefreshStateAuthenticated
}

func (a *refreshAttempt) fail() {
	a.state = RefreshStateFailed
}
