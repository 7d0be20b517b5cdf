package auth

import (
	"context"
	"testing"
	"time"

	"goldlinks/internal/repo/repotest"
	"goldlinks/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, repotest.Users) {
	users := repotest.NewDB().Users()
	svc := NewService(users, Options{Secret: "test-secret", AccessDuration: time.Minute, RefreshDuration: time.Hour})
	return svc, users
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	resp, err := svc.Register(ctx, models.RegisterRequest{Email: " Owner@Example.com ", Password: "correct-horse", Name: "Owner"})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", resp.User.Email)
	assert.Equal(t, models.RoleBusinessOwner, resp.User.Role)
	assert.Equal(t, int64(60), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, resp.User.ID, claims.UserID)

	_, err = svc.Register(ctx, models.RegisterRequest{Email: "owner@example.com", Password: "another-pass", Name: "Dup"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "owner@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotNil(t, login.User.LastLoginAt)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "owner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService()

	resp, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.com", Password: "password1", Name: "A"})
	require.NoError(t, err)

	u, _ := users.GetByID(ctx, resp.User.ID)
	u.IsActive = false
	require.NoError(t, users.Update(ctx, u))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "a@b.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrUserDisabled)

	_, err = svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	resp, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.com", Password: "password1", Name: "A"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	resp, err := svc.Register(ctx, models.RegisterRequest{Email: "a@b.com", Password: "password1", Name: "A"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(repotest.NewDB().Users(), Options{Secret: "other-secret"})
	_, err = other.ValidateToken(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
