package enums

import (
	"fmt"
	"strings"
)

// Role is the closed set of identity kinds; it is fixed at registration.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

var validRoles = []Role{
	RoleStudent,
	RoleTeacher,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role. Surrounding whitespace is ignored.
func ParseRole(value string) (Role, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validRoles {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
