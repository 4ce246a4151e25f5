package models

import (
	"errors"
	"strings"
)

// Role is the closed set of actor roles.
type Role string

const (
	RoleDonor Role = "donor"
	RoleNGO   Role = "ngo"
	RoleAdmin Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleDonor, RoleNGO, RoleAdmin:
		return r, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleNGO, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID string
	Role   Role
}
