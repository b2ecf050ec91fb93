// Package scopes maps comma-separated scope strings to the closed set of
// named permissions an access token can carry, and back.
package scopes

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Permission is a named capability drawn from a fixed set.
type Permission string

const (
	// PermissionOAuthClients allows managing OAuth client registrations.
	PermissionOAuthClients Permission = "oauth_clients"
	// PermissionEmail allows reading the account email address.
	PermissionEmail Permission = "email"
	// PermissionNoExpire marks trusted tokens exempt from client-binding checks.
	PermissionNoExpire Permission = "noexpire"
	// PermissionAdmin allows calling administrative methods.
	PermissionAdmin Permission = "admin"
	// PermissionSessions allows listing and closing account sessions.
	PermissionSessions Permission = "sessions"
	// PermissionSecurity allows changing security sensitive settings.
	PermissionSecurity Permission = "security"
)

// Separator joins permission names inside a scope string.
const Separator = ","

var allowed = map[Permission]struct{}{
	PermissionOAuthClients: {},
	PermissionEmail:        {},
	PermissionNoExpire:     {},
	PermissionAdmin:        {},
	PermissionSessions:     {},
	PermissionSecurity:     {},
}

// Permissions is an ordered, deduplicated permission set.
type Permissions []Permission

// Has reports whether the set contains the given permission.
func (p Permissions) Has(permission Permission) bool {
	for _, held := range p {
		if held == permission {
			return true
		}
	}
	return false
}

// ParseScope parses a scope string into permissions, preserving first-seen
// order. Empty and unrecognized tokens are dropped silently; the lax parse
// never fails.
func ParseScope(scope string) Permissions {
	parsed := Permissions{}
	for _, raw := range strings.Split(scope, Separator) {
		permission := Permission(raw)
		if _, ok := allowed[permission]; !ok {
			continue
		}
		if !parsed.Has(permission) {
			parsed = append(parsed, permission)
		}
	}
	return parsed
}

// NormalizeScope joins permissions back into a canonical scope string.
func NormalizeScope(permissions Permissions) string {
	names := make([]string, 0, len(permissions))
	for _, permission := range permissions {
		names = append(names, string(permission))
	}
	return strings.Join(names, Separator)
}

// TextCodeInsufficientPermissions identifies permission gate failures.
const TextCodeInsufficientPermissions = "auth_insufficient_permissions"

// Require checks that every required permission is held. On failure it
// returns an error carrying the unsatisfied scope (order of required
// preserved) under the "required_scope" metadata key.
func Require(required, held Permissions) error {
	var unsatisfied []string
	for _, permission := range required {
		if !held.Has(permission) {
			unsatisfied = append(unsatisfied, string(permission))
		}
	}

	if len(unsatisfied) == 0 {
		return nil
	}

	requiredScope := strings.Join(unsatisfied, Separator)
	return errors.New("insufficient permissions to call this method", errors.CategoryAuthz).
		WithTextCode(TextCodeInsufficientPermissions).
		WithCode(errors.CodeForbidden).
		WithMetadata(map[string]any{"required_scope": requiredScope})
}
