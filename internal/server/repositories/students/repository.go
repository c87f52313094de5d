package students

import (
	"context"

	"studentdesk/internal/server/models"
)

// Repository is the student-record contract.
type Repository interface {
	Create(ctx context.Context, record *models.StudentRecord) error
	GetByUserID(ctx context.Context, userID string) (*models.StudentRecord, error)
}
