package models

import (
	"errors"
	"strings"
)

// Role is the account kind. Only the two constants below are valid.
type Role string

const (
	RolePrimary  Role = "PRIMARY"
	RoleRelative Role = "RELATIVE"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole accepts PRIMARY or RELATIVE in any case. "USER" is the older name
// of the primary role and is still accepted from clients.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RolePrimary), "USER":
		return RolePrimary, nil
	case string(RoleRelative):
		return RoleRelative, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) Valid() bool {
	return r == RolePrimary || r == RoleRelative
}
