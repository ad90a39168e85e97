package console

import "context"

type contextKey string

const profileContextKey contextKey = "console:profile"

// WithContext stores the profile in the context.
func WithContext(ctx context.Context, profile *Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, profile)
}

// FromContext retrieves the profile from the context, if any.
func FromContext(ctx context.Context) (*Profile, bool) {
	profile, ok := ctx.Value(profileContextKey).(*Profile)
	if !ok || profile == nil {
		return nil, false
	}
	return profile, true
}

// Can answers a page-access question for the profile carried by the
// context, using the default resolver rules. A context without a
// profile denies.
func Can(ctx context.Context, page PageID) bool {
	profile, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return NewResolver().HasPermission(profile, page)
}
