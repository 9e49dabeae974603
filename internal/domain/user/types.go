package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is issued by the external auth service and carried in the JWT.
// The booking core trusts it without re-validating credentials.
type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleOwner, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
