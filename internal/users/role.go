package users

import (
	"fmt"

	"github.com/PabloPavan/sniply_projects/internal/identity"
)

type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleAdmin    UserRole = identity.RoleAdmin
	RoleExternal UserRole = identity.RoleExternal
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleExternal:
		return true
	default:
		return false
	}
}

func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}
