package console

import (
	"context"
	"time"
)

// Watch polls the persisted access token for expiry while the session
// is authenticated. Expiry without a successful refresh forces
// sign-out and fires the expired handler. The first check runs
// immediately, then on every tick.
//
// The returned stop function cancels the watcher; it is safe to call
// more than once. The watcher also exits on its own when the session
// leaves the authenticated state or ctx is done.
func (s *SessionContext) Watch(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(s.watchInterval)
		defer ticker.Stop()

		s.checkExpiry(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s.machine.state() != StateAuthenticated {
					return
				}
				s.checkExpiry(ctx)
			}
		}
	}()

	return cancel
}

// checkExpiry forces sign-out when the access token is expired and
// cannot be refreshed. Refresh success keeps the session alive
// silently.
func (s *SessionContext) checkExpiry(ctx context.Context) {
	if s.machine.state() != StateAuthenticated {
		return
	}

	if !s.tokens.IsExpired(ctx) {
		return
	}

	if s.tokens.Refresh(ctx) {
		s.logger.Debug("access token refreshed by expiry watcher")
		return
	}

	s.logger.Info("session expired, forcing sign-out")
	s.Expire(ctx)
}
