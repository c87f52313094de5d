package services

import (
	"context"
	"database/sql"
	"time"

	"studentdesk/internal/common"
	"studentdesk/internal/logging"
	"studentdesk/internal/server/config"
	"studentdesk/internal/server/models"
	"studentdesk/internal/server/repositories/repomanager"
)

// SessionService issues, validates, and retires session tokens. Tokens are
// opaque 256-bit random values; collision probability is negligible by
// entropy width alone.
type SessionService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *SessionService {
	return &SessionService{
		db:     db,
		repos:  m,
		logger: l.With("module", "sessions"),
		ttl:    cfg.SessionTTL,
		now:    time.Now,
	}
}

// Create issues a new session token for userID, valid for the configured TTL.
func (s *SessionService) Create(ctx context.Context, userID string) (string, error) {
	token, err := common.MakeRandURLSafeString(32)
	if err != nil {
		return "", err
	}

	session := &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: s.now().Add(s.ttl),
		IsActive:  true,
	}

	if err := s.repos.Sessions(s.db).Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// Validate returns the owning user id for a live token. Expired and unknown
// tokens are indistinguishable: both return common.ErrorNotFound.
func (s *SessionService) Validate(ctx context.Context, token string) (string, error) {
	session, err := s.repos.Sessions(s.db).FindActive(ctx, token)
	if err != nil {
		return "", err
	}
	return session.UserID, nil
}

// Invalidate deactivates a token. Idempotent.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	return s.repos.Sessions(s.db).Invalidate(ctx, token)
}

// Cleanup purges expired session rows. Maintenance only, not on the hot path;
// the app runs it on a timer.
func (s *SessionService) Cleanup(ctx context.Context) (int64, error) {
	n, err := s.repos.Sessions(s.db).DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info(ctx, "expired sessions purged", "count", n)
	}
	return n, nil
}
