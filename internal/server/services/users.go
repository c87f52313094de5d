// Package services contains server-side business logic. This file implements
// UserService, which handles registration and authentication, including the
// account-lockout state machine.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studentdesk/internal/common"
	"studentdesk/internal/cryptox"
	"studentdesk/internal/dbx"
	"studentdesk/internal/logging"
	"studentdesk/internal/server/config"
	"studentdesk/internal/server/models"
	"studentdesk/internal/server/repositories/repomanager"
)

// StudentProfile is the optional academic profile supplied at registration.
type StudentProfile struct {
	StudentID  string
	FullName   string
	Department string
	Semester   int
	GPA        float64
}

// AuthResult is the outcome of an authentication attempt. UserID is set only
// on success. Message is the protocol-facing text and never distinguishes an
// unknown username from a wrong password.
type AuthResult struct {
	Status   AuthStatus
	UserID   string
	Username string
	Message  string
}

// UserService provides registration and credential verification. Every
// read-modify-write against the lockout counter runs in a transaction with
// the user row locked, so concurrent attempts for the same account cannot
// drop an increment or read stale lock state.
type UserService struct {
	db               *sql.DB
	repos            repomanager.RepositoryManager
	logger           logging.Logger
	lockoutThreshold int
	lockoutWindow    time.Duration
	now              func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *UserService {
	return &UserService{
		db:               db,
		repos:            m,
		logger:           l.With("module", "users"),
		lockoutThreshold: cfg.LockoutThreshold,
		lockoutWindow:    cfg.LockoutWindow,
		now:              time.Now,
	}
}

// Register creates a new user and, when a profile is supplied, its student
// record in the same transaction. Conflicts yield common.ErrDuplicateUsername
// or common.ErrDuplicateEmail.
func (s *UserService) Register(ctx context.Context, username, password, email string, profile *StudentProfile) (*models.User, error) {

	hash, salt := cryptox.HashPassword(password)

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		exists, err := repo.UsernameExists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrDuplicateUsername
		}

		exists, err = repo.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrDuplicateEmail
		}

		if _, err := repo.Create(ctx, user); err != nil {
			return err
		}

		if profile != nil {
			record := &models.StudentRecord{
				UserID:     user.ID,
				StudentID:  profile.StudentID,
				FullName:   profile.FullName,
				Department: profile.Department,
				Semester:   profile.Semester,
				GPA:        profile.GPA,
			}
			if err := s.repos.Students(tx).Create(ctx, record); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.auditEvent(ctx, "USER_REGISTERED", user.ID, "username="+username, models.SeverityLow)
	return user, nil
}

// dummySalt keeps the cost of an unknown-username attempt comparable to a
// real verification.
var dummySalt = []byte("studentdesk.....")

// Authenticate verifies username/password and drives the lockout state
// machine. The returned AuthResult is never nil when err is nil.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {

	var result *AuthResult

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		user, err := repo.GetByUsernameForUpdate(ctx, username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				_ = cryptox.DeriveHash([]byte(password), dummySalt)
				result = &AuthResult{Status: AuthInvalid, Message: "Invalid credentials"}
				return nil
			}
			return err
		}

		now := s.now()
		state := LockoutState{FailedAttempts: user.FailedLoginAttempts, LockedUntil: user.LockedUntil}

		if IsLocked(state, now) {
			result = &AuthResult{Status: AuthLocked, Message: "Account is locked. Try again later"}
			return nil
		}

		if cryptox.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
			if err := repo.RecordLoginSuccess(ctx, user.ID); err != nil {
				return err
			}
			result = &AuthResult{
				Status:   AuthSuccess,
				UserID:   user.ID,
				Username: user.Username,
				Message:  "Login successful",
			}
			return nil
		}

		out := ApplyFailure(state, s.lockoutThreshold, s.lockoutWindow, now)
		if err := repo.RecordLoginFailure(ctx, user.ID, out.Attempts, out.LockedUntil); err != nil {
			return err
		}
		result = &AuthResult{Status: out.Status, Message: out.Message}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	switch result.Status {
	case AuthSuccess:
		s.auditEvent(ctx, "LOGIN_SUCCESS", result.UserID, "username="+username, models.SeverityLow)
	case AuthLocked:
		s.auditEvent(ctx, "ACCOUNT_LOCKED", "", "username="+username, models.SeverityHigh)
	default:
		s.auditEvent(ctx, "LOGIN_FAILED", "", "username="+username, models.SeverityMedium)
	}

	return result, nil
}

// FindUserIDByUsername resolves a username to its user id.
// Returns common.ErrorNotFound for unknown usernames.
func (s *UserService) FindUserIDByUsername(ctx context.Context, username string) (string, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// auditEvent appends to the security log. Audit failures are logged and
// swallowed; they must never fail the request that produced them.
func (s *UserService) auditEvent(ctx context.Context, eventType, userID, details, severity string) {
	event := &models.AuditEvent{
		EventType:  eventType,
		UserID:     userID,
		ClientAddr: ClientAddrFromContext(ctx),
		Details:    details,
		Severity:   severity,
	}
	if err := s.repos.Audit(s.db).Append(ctx, event); err != nil {
		s.logger.Warn(ctx, "audit append failed", "event", eventType, "error", err.Error())
	}
}
