package entity

import (
	"strings"

	"github.com/uptrace/bun"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// ParseRole accepts a role in any letter case.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleEmployee:
		return r, true
	default:
		return "", false
	}
}

type User struct {
	bun.BaseModel `bun:"table:users"`

	Username string `json:"username" bun:"username,pk"`
	Password string `json:"-"        bun:"password"`
	Role     Role   `json:"role"     bun:"role"`
}
