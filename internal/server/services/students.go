package services

import (
	"context"
	"database/sql"

	"studentdesk/internal/server/models"
	"studentdesk/internal/server/repositories/repomanager"
)

// StudentService reads academic profile records.
type StudentService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewStudentService(db *sql.DB, m repomanager.RepositoryManager) *StudentService {
	return &StudentService{db: db, repos: m}
}

// GetByUserID returns the student record owned by userID, or
// common.ErrorNotFound when none exists.
func (s *StudentService) GetByUserID(ctx context.Context, userID string) (*models.StudentRecord, error) {
	return s.repos.Students(s.db).GetByUserID(ctx, userID)
}
