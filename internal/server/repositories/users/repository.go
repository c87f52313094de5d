package users

import (
	"context"
	"time"

	"studentdesk/internal/server/models"
)

// Repository is the credential-store contract. Implementations must be safe
// for use from concurrent connection workers; read-modify-write sequences
// (lockout counters) are serialized by the caller via transactions and
// GetByUsernameForUpdate.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByUsernameForUpdate locks the user row for the duration of the
	// surrounding transaction.
	GetByUsernameForUpdate(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// RecordLoginSuccess resets the failed-attempt counter, clears the lock,
	// and stamps last_login.
	RecordLoginSuccess(ctx context.Context, userID string) error
	// RecordLoginFailure persists the new counter value and, when the
	// lockout triggered, the lock expiry.
	RecordLoginFailure(ctx context.Context, userID string, attempts int, lockedUntil *time.Time) error
}
