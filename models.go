package console

import (
	"strings"
	"time"
)

// UserRole is the user's role
type UserRole string

const (
	// RoleUser is a regular console account, gated by its permission map
	RoleUser UserRole = "user"
	// RoleAdmin is an administrator account
	RoleAdmin UserRole = "admin"
)

// Credential identifies the signed-in principal. It is replaced
// wholesale on sign-in and destroyed on sign-out; its lifecycle is
// coupled to the Profile's.
type Credential struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// PermissionMap maps page identifiers to access flags. Only catalog
// page ids are valid keys; unknown ids are dropped at the API boundary.
type PermissionMap map[PageID]bool

// Clone returns an independent copy of the map.
func (m PermissionMap) Clone() PermissionMap {
	if m == nil {
		return nil
	}
	out := make(PermissionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ParsePermissionMap validates a raw permission payload against the
// closed page-id enumeration, dropping unknown keys. Dropping is safe:
// a key the catalog does not know can never grant access.
func ParsePermissionMap(raw map[string]bool) (PermissionMap, []string) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(PermissionMap, len(raw))
	var dropped []string
	for key, allowed := range raw {
		id, ok := ParsePageID(key)
		if !ok {
			dropped = append(dropped, key)
			continue
		}
		out[id] = allowed
	}

	if len(out) == 0 {
		out = nil
	}
	return out, dropped
}

// Profile is the full user record backing permission decisions.
type Profile struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Username    string        `json:"username"`
	Role        UserRole      `json:"role"`
	UserID      string        `json:"user_id"`
	Permissions PermissionMap `json:"permissions,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Clone returns an independent copy, including the permission map.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Permissions = p.Permissions.Clone()
	return &out
}

// ProfileUpdate carries the partial fields merged by UpdateProfile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string
	Role        *UserRole
	Permissions PermissionMap
}

// Session is the transient in-memory wrapper around the credential; it
// is reconstructed from persisted state at startup.
type Session struct {
	User Credential `json:"user"`
}

// GetUserID returns the signed-in principal's id.
func (s *Session) GetUserID() string {
	return s.User.UserID
}

// GetUsername returns the signed-in principal's username.
func (s *Session) GetUsername() string {
	return s.User.Username
}

// SplitName splits a free-text display name into first/last
// components. The backend requires a non-empty last name, so a
// single-word name doubles as its own last name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "", ""
	}

	first = parts[0]
	last = strings.Join(parts[1:], " ")
	if last == "" {
		last = first
	}
	return first, last
}
