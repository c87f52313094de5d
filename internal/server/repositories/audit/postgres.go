// Package audit provides a PostgreSQL-backed append-only log of security
// events (logins, lockouts, registrations).
package audit

import (
	"context"
	"database/sql"
	"fmt"

	"studentdesk/internal/dbx"
	"studentdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, event *models.AuditEvent) error {
	query := `
		INSERT INTO audit_events (event_type, user_id, client_addr, details, severity)
		VALUES ($1, $2, $3, $4, $5)
	`

	var userID sql.NullString
	if event.UserID != "" {
		userID = sql.NullString{String: event.UserID, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query,
		event.EventType, userID, event.ClientAddr, event.Details, event.Severity); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
