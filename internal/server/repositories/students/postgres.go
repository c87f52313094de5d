// Package students provides a PostgreSQL-backed repository for academic
// profile records.
package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studentdesk/internal/common"
	"studentdesk/internal/dbx"
	"studentdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.StudentRecord) error {
	query := `
		INSERT INTO student_records (user_id, student_id, full_name, department, semester, gpa)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.UserID, record.StudentID, record.FullName,
		record.Department, record.Semester, record.GPA)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.StudentRecord, error) {
	query := `
		SELECT id, user_id, student_id, full_name, department,
		       semester, gpa, attendance_percentage
		FROM student_records
		WHERE user_id = $1
	`
	record := &models.StudentRecord{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&record.ID, &record.UserID, &record.StudentID, &record.FullName,
		&record.Department, &record.Semester, &record.GPA, &record.AttendancePercentage)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return record, nil
}
