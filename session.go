package console

import (
	"context"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// SessionContext is the single source of truth for the signed-in
// principal. It composes the Store, the REST client, and the
// TokenLifecycle, and is constructed explicitly so every collaborator
// can be replaced in tests.
//
// Auth operations return errors as values so the caller can render
// them inline; token and session corruption errors are handled
// internally and only surface through the expired handler.
type SessionContext struct {
	store  Store
	client *Client
	tokens *TokenLifecycle
	logger Logger
	sink   ActivitySink
	now    func() time.Time

	watchInterval time.Duration
	onExpired     func()

	machine *sessionStateMachine

	mu         sync.RWMutex
	generation uint64
	credential *Credential
	profile    *Profile
}

// NewSessionContext wires a session context. The client's auth-failed
// handler is pointed at Expire so an exhausted refresh budget forces
// sign-out.
func NewSessionContext(store Store, client *Client, tokens *TokenLifecycle) *SessionContext {
	s := &SessionContext{
		store:         store,
		client:        client,
		tokens:        tokens,
		logger:        defLogger{},
		sink:          noopActivitySink{},
		now:           time.Now,
		watchInterval: 30 * time.Second,
		machine:       newSessionStateMachine(),
	}

	if client != nil {
		client.WithAuthFailedHandler(func() {
			s.Expire(context.Background())
		})
	}

	return s
}

func (s *SessionContext) WithLogger(logger Logger) *SessionContext {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting session
// events.
func (s *SessionContext) WithActivitySink(sink ActivitySink) *SessionContext {
	s.sink = normalizeActivitySink(sink)
	return s
}

// WithClock injects a custom clock (useful for tests).
func (s *SessionContext) WithClock(clock func() time.Time) *SessionContext {
	if clock != nil {
		s.now = clock
	}
	return s
}

// WithWatchInterval overrides the expiry polling period.
func (s *SessionContext) WithWatchInterval(d time.Duration) *SessionContext {
	if d > 0 {
		s.watchInterval = d
	}
	return s
}

// WithExpiredHandler registers the redirect hook invoked after a
// forced sign-out (expired or unrefreshable session).
func (s *SessionContext) WithExpiredHandler(fn func()) *SessionContext {
	s.onExpired = fn
	return s
}

// State returns the current lifecycle state.
func (s *SessionContext) State() SessionState {
	return s.machine.state()
}

// Authenticated reports whether a credential and profile are loaded.
func (s *SessionContext) Authenticated() bool {
	return s.machine.state() == StateAuthenticated
}

// Current returns the transient session wrapper, or nil when
// anonymous.
func (s *SessionContext) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.credential == nil {
		return nil
	}
	return &Session{User: *s.credential}
}

// Profile returns a copy of the loaded profile, or nil when anonymous.
func (s *SessionContext) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Restore rebuilds the session from persisted state at startup. A
// credential without a profile (or the reverse) is a corrupted
// session: both are cleared and ErrProfileMissing is returned.
func (s *SessionContext) Restore(ctx context.Context) error {
	credential := &Credential{}
	credErr := getJSON(ctx, s.store, StoreKeyUser, credential)

	profile := &Profile{}
	profErr := getJSON(ctx, s.store, StoreKeyProfile, profile)

	if credErr != nil && profErr != nil {
		// Nothing persisted; stay anonymous.
		return nil
	}

	if credErr != nil || profErr != nil {
		s.logger.Warn("persisted session is incomplete, forcing sign-out")
		s.SignOut(ctx)
		return ErrProfileMissing
	}

	if err := s.machine.transition(StateAuthenticated); err != nil {
		return err
	}

	s.mu.Lock()
	s.credential = credential
	s.profile = profile
	s.mu.Unlock()

	return nil
}

// SignIn authenticates against the backend and, on success, persists
// credential, profile, and both tokens. Rejection and network errors
// are returned as values without mutating state.
func (s *SessionContext) SignIn(ctx context.Context, username, password string) error {
	if err := s.machine.transition(StateAuthenticating); err != nil {
		return err
	}

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		// transition back unless a concurrent sign-out already did
		if terr := s.machine.transition(StateAnonymous); terr != nil {
			s.logger.Debug("sign-in rollback transition skipped: %v", terr)
		}
		s.recordActivity(ctx, ActivityEvent{
			EventType: ActivityEventSignInFailure,
			Username:  username,
			Metadata:  map[string]any{"error": err.Error()},
		})
		return err
	}

	credential := &Credential{
		UserID:   resp.User.ID.String(),
		Username: resp.User.Username,
	}

	name := resp.Profile.Name
	if name == "" {
		name = strings.TrimSpace(resp.User.FirstName + " " + resp.User.LastName)
	}

	permissions, dropped := ParsePermissionMap(resp.User.Permissions)
	if len(dropped) > 0 {
		s.logger.Debug("dropped unknown permission keys: %s", print.MaybePrettyJSON(dropped))
	}

	profile := &Profile{
		ID:          resp.Profile.ID.String(),
		Name:        name,
		Username:    resp.Profile.Username,
		Role:        UserRole(resp.Profile.Role),
		UserID:      credential.UserID,
		Permissions: permissions,
		CreatedAt:   resp.Profile.CreatedAt,
		UpdatedAt:   resp.Profile.UpdatedAt,
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.Info("discarding login response for %s, session changed while request was in flight", username)
		return ErrStaleResponse
	}
	s.credential = credential
	s.profile = profile
	s.mu.Unlock()

	if err := s.persistSession(ctx, credential, profile, resp.Access, resp.Refresh); err != nil {
		s.clearState(ctx)
		return err
	}

	if err := s.machine.transition(StateAuthenticated); err != nil {
		return err
	}

	s.recordActivity(ctx, ActivityEvent{
		EventType: ActivityEventSignInSuccess,
		UserID:    credential.UserID,
		Username:  credential.Username,
	})

	return nil
}

// signUpInput is validated locally before any network round-trip.
type signUpInput struct {
	Username string
	Name     string
	Password string
}

func (r signUpInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Name, validation.Required),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(8, 0).Error("must be at least 8 characters long"),
		),
	)
}

// SignUp registers a new account. Registration is deliberately
// decoupled from login: success does not authenticate the session.
// An empty role defaults to RoleUser.
func (s *SessionContext) SignUp(ctx context.Context, password, name, username string, role UserRole) error {
	if role == "" {
		role = RoleUser
	}
	if !role.IsValid() {
		return errors.New("unknown role", errors.CategoryValidation).
			WithMetadata(map[string]any{"role": string(role)})
	}

	input := signUpInput{Username: username, Name: name, Password: password}
	if err := input.Validate(); err != nil {
		s.recordActivity(ctx, ActivityEvent{
			EventType: ActivityEventSignUpFailure,
			Username:  username,
			Metadata:  map[string]any{"error": err.Error()},
		})
		return errors.Wrap(err, errors.CategoryValidation, "registration validation failed")
	}

	first, last := SplitName(name)

	err := s.client.Register(ctx, RegisterRequest{
		Username:        username,
		FirstName:       first,
		LastName:        last,
		Password:        password,
		PasswordConfirm: password,
		Role:            string(role),
	})
	if err != nil {
		s.recordActivity(ctx, ActivityEvent{
			EventType: ActivityEventSignUpFailure,
			Username:  username,
			Metadata:  map[string]any{"error": err.Error()},
		})
		return err
	}

	s.recordActivity(ctx, ActivityEvent{
		EventType: ActivityEventSignUpSuccess,
		Username:  username,
	})
	return nil
}

// SignOut clears the in-memory session and every persisted
// credential/profile/token field. It is idempotent and never fails;
// store errors are logged and swallowed.
func (s *SessionContext) SignOut(ctx context.Context) {
	wasAuthenticated := s.Authenticated()

	userID, username := s.clearState(ctx)

	if wasAuthenticated {
		s.recordActivity(ctx, ActivityEvent{
			EventType: ActivityEventSignOut,
			UserID:    userID,
			Username:  username,
		})
	}
}

// Expire performs a forced sign-out (expired or unrefreshable
// session) and invokes the redirect hook. Safe to call when already
// signed out.
func (s *SessionContext) Expire(ctx context.Context) {
	wasAuthenticated := s.Authenticated()

	userID, username := s.clearState(ctx)

	if wasAuthenticated {
		s.recordActivity(ctx, ActivityEvent{
			EventType: ActivityEventExpired,
			UserID:    userID,
			Username:  username,
		})
	}

	if s.onExpired != nil {
		s.onExpired()
	}
}

// UpdateProfile merges the partial update into the loaded profile and
// persists it. The merge is local only; callers needing server
// persistence perform that separately.
func (s *SessionContext) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	s.mu.Lock()

	if s.credential == nil || s.profile == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}

	if update.Name != nil {
		s.profile.Name = *update.Name
	}
	if update.Role != nil {
		s.profile.Role = *update.Role
	}
	if update.Permissions != nil {
		s.profile.Permissions = update.Permissions.Clone()
	}
	s.profile.UpdatedAt = s.now()

	profile := s.profile.Clone()
	s.mu.Unlock()

	if err := setJSON(ctx, s.store, StoreKeyProfile, profile); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist profile update")
	}

	s.recordActivity(ctx, ActivityEvent{
		EventType: ActivityEventProfileUpdated,
		UserID:    profile.UserID,
		Username:  profile.Username,
	})
	return nil
}

// Tokens exposes the composed lifecycle manager.
func (s *SessionContext) Tokens() *TokenLifecycle {
	return s.tokens
}

func (s *SessionContext) persistSession(ctx context.Context, credential *Credential, profile *Profile, access, refresh string) error {
	if err := setJSON(ctx, s.store, StoreKeyUser, credential); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist credential")
	}
	if err := setJSON(ctx, s.store, StoreKeyProfile, profile); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist profile")
	}
	if err := s.store.Set(ctx, StoreKeyAccessToken, access); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist access token")
	}
	if err := s.store.Set(ctx, StoreKeyRefreshToken, refresh); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist refresh token")
	}
	return nil
}

// clearState wipes memory and persisted session fields, bumping the
// generation counter so in-flight responses are discarded. Returns the
// identity that was cleared, for auditing.
func (s *SessionContext) clearState(ctx context.Context) (userID, username string) {
	s.mu.Lock()
	s.generation++
	if s.credential != nil {
		userID = s.credential.UserID
		username = s.credential.Username
	}
	s.credential = nil
	s.profile = nil
	s.mu.Unlock()

	// Force to anonymous regardless of current state.
	if err := s.machine.transition(StateAnonymous); err != nil {
		s.logger.Debug("sign-out transition already settled: %v", err)
	}

	for _, key := range []string{StoreKeyUser, StoreKeyProfile, StoreKeyAccessToken, StoreKeyRefreshToken} {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to clear persisted key %s: %v", key, err)
		}
	}

	return userID, username
}

func (s *SessionContext) recordActivity(ctx context.Context, event ActivityEvent) {
	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}

	sink := normalizeActivitySink(s.sink)
	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}
