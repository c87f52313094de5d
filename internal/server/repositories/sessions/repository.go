package sessions

import (
	"context"

	"studentdesk/internal/server/models"
)

// Repository is the session-table contract.
type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	// FindActive returns the session iff it exists, is active, and has not
	// expired. Expired and unknown tokens are indistinguishable: both yield
	// common.ErrorNotFound.
	FindActive(ctx context.Context, token string) (*models.Session, error)
	// Invalidate deactivates the token. Idempotent; unknown tokens are not
	// an error.
	Invalidate(ctx context.Context, token string) error
	// DeleteExpired removes sessions past their expiry and reports how many
	// rows were purged.
	DeleteExpired(ctx context.Context) (int64, error)
}
