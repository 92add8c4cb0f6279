package domain

import (
	"errors"
	"strings"
)

// Role is the closed set of user roles. Values are stored and compared in
// their canonical uppercase form; ParseRole is the only place case folding
// happens, so call it at every input boundary (invite payloads, seed data)
// and nowhere else.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// ErrInvalidRole reports a role string outside the closed set.
var ErrInvalidRole = errors.New("domain: invalid role")

// ParseRole normalises and validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }
