package model

import "strings"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts both USER/ADMIN and the ROLE_ prefixed form.
func ParseRole(s string) Role {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleUser:
		return RoleUser
	default:
		return ""
	}
}

// AdminUser is a row of the admin users list.
type AdminUser struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Enabled       bool   `json:"enabled"`
	Banned        bool   `json:"banned"`
	BanReason     string `json:"banReason,omitempty"`
	BanExpiration string `json:"banExpiration,omitempty"`
	AuthProvider  string `json:"authProvider,omitempty"`
}
