package auth

import "time"

// Role is the closed set of account roles. Comparison is by value; there is
// no implicit coercion from arbitrary strings.
type Role string

const (
	// RoleUser is the default role for self-registered accounts.
	RoleUser Role = "user"
	// RoleAdmin grants access to the /admin surface.
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored or claimed string onto a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User represents a user account.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the trusted caller identity reconstructed from a validated
// bearer token. It lives for a single request and is never persisted.
type Identity struct {
	Username string
	UserID   int64
	Role     Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
