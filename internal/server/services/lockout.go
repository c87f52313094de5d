package services

import (
	"fmt"
	"time"
)

// AuthStatus classifies the outcome of an authentication attempt.
type AuthStatus int

const (
	AuthSuccess AuthStatus = iota
	AuthInvalid
	AuthLocked
)

// LockoutState is the slice of the user record the lockout policy reads.
type LockoutState struct {
	FailedAttempts int
	LockedUntil    *time.Time
}

// IsLocked reports whether the account is inside its lock window. A locked
// account rejects authentication without consulting the password at all.
func IsLocked(state LockoutState, now time.Time) bool {
	return state.LockedUntil != nil && now.Before(*state.LockedUntil)
}

// FailureOutcome is the persisted result of a credential mismatch.
type FailureOutcome struct {
	Attempts    int
	LockedUntil *time.Time
	Status      AuthStatus
	Message     string
}

// ApplyFailure advances the failed-attempt counter after a mismatch and
// decides whether the lockout triggers. The counter is monotonically
// non-decreasing until a successful login resets it; lock expiry alone does
// not reset it.
func ApplyFailure(state LockoutState, threshold int, window time.Duration, now time.Time) FailureOutcome {
	attempts := state.FailedAttempts + 1

	if attempts >= threshold {
		until := now.Add(window)
		return FailureOutcome{
			Attempts:    attempts,
			LockedUntil: &until,
			Status:      AuthLocked,
			Message: fmt.Sprintf("Account locked for %d minutes due to too many failed attempts",
				int(window.Minutes())),
		}
	}

	return FailureOutcome{
		Attempts: attempts,
		Status:   AuthInvalid,
		Message:  fmt.Sprintf("Invalid credentials. %d attempts remaining", threshold-attempts),
	}
}
