package models

import "time"

// SupportRequest is a student-submitted request or complaint.
type SupportRequest struct {
	ID          string
	UserID      string
	RequestType string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
