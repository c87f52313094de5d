package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studentdesk/internal/common"
	"studentdesk/internal/dbx"
	"studentdesk/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, password_hash, password_salt,
	failed_login_attempts, locked_until, last_login, created_at`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, password_hash, password_salt)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.PasswordSalt).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByUsernameForUpdate(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 FOR UPDATE`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var lockedUntil, lastLogin sql.NullTime

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.PasswordSalt,
		&user.FailedLoginAttempts, &lockedUntil, &lastLogin, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lockedUntil.Valid {
		user.LockedUntil = &lockedUntil.Time
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}

func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) RecordLoginSuccess(ctx context.Context, userID string) error {
	query :=
		`UPDATE users SET
			failed_login_attempts = 0,
			locked_until = NULL,
			last_login = now()
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RecordLoginFailure(ctx context.Context, userID string, attempts int, lockedUntil *time.Time) error {
	// A nil lockedUntil leaves any previous (already expired) lock untouched,
	// matching the historical counter behavior.
	query :=
		`UPDATE users SET
			failed_login_attempts = $2,
			locked_until = COALESCE($3, locked_until)
		 WHERE id = $1
		 `

	var lock sql.NullTime
	if lockedUntil != nil {
		lock = sql.NullTime{Time: *lockedUntil, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query, userID, attempts, lock); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
