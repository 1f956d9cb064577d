package enums

import "fmt"

// RoleName identifies a system-wide authority granted to a user.
type RoleName string

const (
	RoleUser  RoleName = "ROLE_USER"
	RoleAdmin RoleName = "ROLE_ADMIN"
)

var validRoleNames = []RoleName{
	RoleUser,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r RoleName) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoleName.
func (r RoleName) IsValid() bool {
	for _, candidate := range validRoleNames {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoleName converts raw input into a RoleName.
func ParseRoleName(value string) (RoleName, error) {
	for _, candidate := range validRoleNames {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role name %q", value)
}
