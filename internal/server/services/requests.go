package services

import (
	"context"
	"database/sql"

	"studentdesk/internal/server/models"
	"studentdesk/internal/server/repositories/repomanager"
)

// listLimit caps how many requests a single GET_REQUESTS returns.
const listLimit = 50

// RequestService stores and lists student requests/complaints.
type RequestService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewRequestService(db *sql.DB, m repomanager.RepositoryManager) *RequestService {
	return &RequestService{db: db, repos: m}
}

// Submit persists a new request with status "pending".
func (s *RequestService) Submit(ctx context.Context, userID, requestType, title, description string) (*models.SupportRequest, error) {
	req := &models.SupportRequest{
		UserID:      userID,
		RequestType: requestType,
		Title:       title,
		Description: description,
	}
	return s.repos.Requests(s.db).Create(ctx, req)
}

// List returns the user's requests, newest first.
func (s *RequestService) List(ctx context.Context, userID string) ([]*models.SupportRequest, error) {
	return s.repos.Requests(s.db).ListByUserID(ctx, userID, listLimit)
}
