// Package session owns the client-held record of an authenticated identity:
// the bearer token plus the cached user record. It provides the persistence
// contract (Store), two store implementations (file and OS keychain), and the
// Controller, the single mutator and notification point for session state.
package session

import "time"

// User is the cached account record returned by the identity backend.
type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	IsVerified bool       `json:"is_verified"`
	GoogleID   *string    `json:"google_id,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// Session is the single source of truth for "who is logged in".
// User is present only when Token is present; an empty Token means anonymous.
type Session struct {
	Token string
	User  *User
}

// Authenticated reports whether the session holds a usable identity:
// a token together with a cached user record.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}
