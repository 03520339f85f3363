package model

import "time"

// Role is a user's permission level.
type Role string

const (
	// RolePlayer is a regular user.
	RolePlayer Role = "player"
	// RoleAdmin can moderate users, matches and emails.
	RoleAdmin Role = "admin"
)

// User is the profile of the signed-in user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the authenticated state of the client.
type Session struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
}

// Authenticated reports whether the session holds a token that has not
// expired. A zero ExpiresAt never expires.
func (s Session) Authenticated(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// IsAdmin reports whether the session user can moderate.
func (s Session) IsAdmin() bool {
	return s.User.Role == RoleAdmin
}
