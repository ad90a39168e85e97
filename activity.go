package console

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventSignInSuccess  ActivityEventType = "session.signin.success"
	ActivityEventSignInFailure  ActivityEventType = "session.signin.failure"
	ActivityEventSignUpSuccess  ActivityEventType = "session.signup.success"
	ActivityEventSignUpFailure  ActivityEventType = "session.signup.failure"
	ActivityEventSignOut        ActivityEventType = "session.signout"
	ActivityEventExpired        ActivityEventType = "session.expired"
	ActivityEventProfileUpdated ActivityEventType = "session.profile.updated"
)

// ActivityEvent captures audit-friendly information about a session
// action.
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     string
	Username   string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry
// purposes. Sinks run best-effort: errors are logged, never propagated
// into the auth flow.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
