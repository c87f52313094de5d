package models

import "time"

// Audit event severities.
const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// AuditEvent is an append-only security log entry. UserID may be empty when
// the event is not attributable to an account.
type AuditEvent struct {
	ID         int64
	At         time.Time
	EventType  string
	UserID     string
	ClientAddr string
	Details    string
	Severity   string
}
