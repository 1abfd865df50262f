package domain

import (
	"strings"
	"time"
)

// Role is the authorization level of a storefront account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// NormalizeRole maps a loosely-typed role string onto a Role.
// Anything other than "admin" or "user" (case-insensitive) yields "".
func NormalizeRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "user":
		return RoleUser
	}
	return ""
}

// SessionUser is the display identity derived from whatever session record a
// client happens to hold. Username is never empty on a non-nil value.
type SessionUser struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// IsAdmin reports whether the session carries the admin role.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// StoredUser is a row of the users table.
type StoredUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// UserCredentials is the local-backend view of a user including its password hash.
type UserCredentials struct {
	StoredUser
	PasswordHash string
}
