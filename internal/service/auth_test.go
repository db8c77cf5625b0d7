package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/pkg/tokens"
)

func newAuthService(r *repo.GormRepo) *AuthService {
	return &AuthService{
		Repo:      r,
		JWTSecret: []byte("test-jwt-secret"),
		TokenTTL:  time.Hour,
	}
}

func TestAuthService_Register_DefaultsToCustomer(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newAuthService(r)

	user, err := svc.Register(context.Background(), "jane@example.com", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestAuthService_Register_Conflict(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newAuthService(r)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jane@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "jane@example.com", "another-secret", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login_IssuesToken(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newAuthService(r)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "admin@example.com", "secret123", models.RoleAdmin)
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := tokens.AccessClaimsFromToken(token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newAuthService(r)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jane@example.com", "secret123", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong-password")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newAuthService(r)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
