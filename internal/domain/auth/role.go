package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of account kinds. Role-specific behaviour lives in
// free functions keyed on it rather than in per-role types.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleHR       Role = "HR"
	RoleEmployee Role = "Employee"
)

var Roles = []Role{RoleAdmin, RoleHR, RoleEmployee}

// ParseRole accepts the stored spelling and the one-letter menu keys.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin", "a":
		return RoleAdmin, nil
	case "hr", "h":
		return RoleHR, nil
	case "employee", "e":
		return RoleEmployee, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

type Credential struct {
	Username string
	Password string
	Role     Role
}

// Identity is an authenticated principal.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
