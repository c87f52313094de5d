package audit

import (
	"context"

	"studentdesk/internal/server/models"
)

// Repository is the append-only security-audit contract.
type Repository interface {
	Append(ctx context.Context, event *models.AuditEvent) error
}
