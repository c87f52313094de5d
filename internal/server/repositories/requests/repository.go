package requests

import (
	"context"

	"studentdesk/internal/server/models"
)

// Repository is the request/complaint contract.
type Repository interface {
	Create(ctx context.Context, req *models.SupportRequest) (*models.SupportRequest, error)
	// ListByUserID returns the user's requests, newest first, at most limit.
	ListByUserID(ctx context.Context, userID string, limit int) ([]*models.SupportRequest, error)
}
