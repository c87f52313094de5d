package models

import "time"

// User is the credential-store identity record. Lockout fields are mutated
// only by authentication attempts.
type User struct {
	ID                  string
	Username            string
	Email               string
	PasswordHash        []byte
	PasswordSalt        []byte
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LastLogin           *time.Time
	CreatedAt           time.Time
}
