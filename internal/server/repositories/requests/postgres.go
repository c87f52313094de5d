// Package requests provides a PostgreSQL-backed repository for
// student-submitted requests and complaints.
package requests

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, req *models.SupportRequest) (*models.SupportRequest, error) {
	query := `
		INSERT INTO requests (user_id, request_type, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		req.UserID, req.RequestType, req.Title, req.Description).
		Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return req, nil
}

func (r *PostgresRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*models.SupportRequest, error) {
	query := `
		SELECT id, user_id, request_type, title, description, status, created_at, updated_at
		FROM requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SupportRequest
	for rows.Next() {
		req := &models.SupportRequest{}
		if err := rows.Scan(&req.ID, &req.UserID, &req.RequestType, &req.Title,
			&req.Description, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
