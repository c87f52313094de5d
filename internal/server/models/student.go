package models

// StudentRecord holds the academic profile attached to a user account.
type StudentRecord struct {
	ID                   string
	UserID               string
	StudentID            string
	FullName             string
	Department           string
	Semester             int
	GPA                  float64
	AttendancePercentage float64
}
