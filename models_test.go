package console_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	console "github.com/goliatone/go-console"
)

func TestSplitName(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedFirst string
		expectedLast  string
	}{
		{"two words", "Amira Hassan", "Amira", "Hassan"},
		{"single word doubles as last", "Madonna", "Madonna", "Madonna"},
		{"three words", "Ana de Armas", "Ana", "de Armas"},
		{"extra whitespace", "  Amira   Hassan  ", "Amira", "Hassan"},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := console.SplitName(tc.input)
			assert.Equal(t, tc.expectedFirst, first)
			assert.Equal(t, tc.expectedLast, last)
		})
	}
}

func TestParsePermissionMapDropsUnknownKeys(t *testing.T) {
	raw := map[string]bool{
		"dashboard": true,
		"events":    false,
		"reports":   true,
		"admin":     true,
	}

	permissions, dropped := console.ParsePermissionMap(raw)
	assert.Len(t, permissions, 2)
	assert.True(t, permissions[console.PageDashboard])
	assert.False(t, permissions[console.PageEvents])
	assert.ElementsMatch(t, []string{"reports", "admin"}, dropped)
}

func TestParsePermissionMapEmptyInput(t *testing.T) {
	permissions, dropped := console.ParsePermissionMap(nil)
	assert.Nil(t, permissions)
	assert.Nil(t, dropped)
}

func TestParsePermissionMapAllUnknownYieldsNil(t *testing.T) {
	permissions, dropped := console.ParsePermissionMap(map[string]bool{"reports": true})
	assert.Nil(t, permissions)
	assert.Equal(t, []string{"reports"}, dropped)
}

func TestPermissionMapCloneIsIndependent(t *testing.T) {
	original := console.PermissionMap{console.PageEvents: true}
	clone := original.Clone()
	clone[console.PageEvents] = false

	assert.True(t, original[console.PageEvents])
}

func TestProfileCloneCopiesPermissions(t *testing.T) {
	profile := &console.Profile{
		Name:        "Amira Hassan",
		Permissions: console.PermissionMap{console.PageEvents: true},
	}

	clone := profile.Clone()
	clone.Permissions[console.PageEvents] = false
	clone.Name = "Someone Else"

	assert.True(t, profile.Permissions[console.PageEvents])
	assert.Equal(t, "Amira Hassan", profile.Name)
}

func TestProfileIsAdmin(t *testing.T) {
	assert.False(t, (*console.Profile)(nil).IsAdmin())
	assert.False(t, (&console.Profile{Role: console.RoleUser}).IsAdmin())
	assert.True(t, (&console.Profile{Role: console.RoleAdmin}).IsAdmin())
}

func TestParseRole(t *testing.T) {
	role, ok := console.ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, console.RoleAdmin, role)

	_, ok = console.ParseRole("owner")
	assert.False(t, ok)
}

func TestParsePageID(t *testing.T) {
	id, ok := console.ParsePageID("language-settings")
	assert.True(t, ok)
	assert.Equal(t, console.PageLanguageSettings, id)

	_, ok = console.ParsePageID("reports")
	assert.False(t, ok)
}
