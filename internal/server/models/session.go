package models

import "time"

// Session is an ephemeral credential proof issued on successful login.
// A session is valid iff IsActive and ExpiresAt is in the future.
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	IsActive  bool
}
