package console

// IsValid checks if the role is one of the predefined valid roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// AllRoles returns the predefined roles in ascending privilege order.
func AllRoles() []UserRole {
	return []UserRole{RoleUser, RoleAdmin}
}

// ParseRole safely parses a string into a UserRole.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(raw)
	return role, role.IsValid()
}
