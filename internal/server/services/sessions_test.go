package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"studentdesk/internal/common"
	"studentdesk/internal/server/config"
)

func newTestSessionService(t *testing.T) (*SessionService, *fakeRepoManager) {
	t.Helper()

	db, err := sql.Open("sqlite", "file:sessions_svc_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := &fakeRepoManager{db: db, sessionRepo: newFakeSessionRepo()}
	cfg := &config.Config{SessionTTL: 24 * time.Hour}
	return NewSessionService(db, m, cfg, testLogger()), m
}

func TestSessionService_CreateAndValidate(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	token, err := svc.Create(ctx, "u-1")
	require.NoError(t, err)
	// 32 random bytes, URL-safe base64 without padding.
	assert.Len(t, token, 43)

	userID, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestSessionService_TokensAreUnique(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "u-1")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "u-1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSessionService_ValidateUnknownToken(t *testing.T) {
	svc, _ := newTestSessionService(t)

	_, err := svc.Validate(context.Background(), "bogus")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSessionService_Invalidate(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	token, err := svc.Create(ctx, "u-1")
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(ctx, token))

	_, err = svc.Validate(ctx, token)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// Invalidating again is fine.
	assert.NoError(t, svc.Invalidate(ctx, token))
}

func TestSessionService_Cleanup(t *testing.T) {
	svc, m := newTestSessionService(t)
	ctx := context.Background()

	token, err := svc.Create(ctx, "u-1")
	require.NoError(t, err)

	// Age the session past its expiry.
	m.sessionRepo.byToken[token].ExpiresAt = time.Now().Add(-time.Minute)

	n, err := svc.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.Validate(ctx, token)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
