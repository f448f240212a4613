package service

import (
	"context"
	"testing"
	"time"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) (AuthService, UserService) {
	f := newFixture(t)
	sessions := session.NewMemoryStore(12 * time.Hour)
	return NewAuthService(f.userRepo, sessions), f.users
}

func TestAuthService_Login(t *testing.T) {
	authService, userService := setupAuthServiceTest(t)
	ctx := context.Background()

	user, err := userService.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)

	token, loggedIn, err := authService.Login(ctx, "admin", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	sess, err := authService.Authenticate(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, model.RoleAdmin, sess.Role)
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	authService, userService := setupAuthServiceTest(t)
	ctx := context.Background()

	_, err := userService.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "nobody", "secret123"},
		{"wrong password", "admin", "wrong"},
		{"empty username", "", "secret123"},
		{"empty password", "admin", ""},
	}

	// every failure mode produces the same error
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := authService.Login(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_TokensAreUniquePerLogin(t *testing.T) {
	authService, userService := setupAuthServiceTest(t)
	ctx := context.Background()

	_, err := userService.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)

	first, _, err := authService.Login(ctx, "admin", "secret123")
	require.NoError(t, err)
	second, _, err := authService.Login(ctx, "admin", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// both sessions are live concurrently
	sess1, err := authService.Authenticate(ctx, first)
	require.NoError(t, err)
	assert.NotNil(t, sess1)
	sess2, err := authService.Authenticate(ctx, second)
	require.NoError(t, err)
	assert.NotNil(t, sess2)
}

func TestAuthService_Logout(t *testing.T) {
	authService, userService := setupAuthServiceTest(t)
	ctx := context.Background()

	_, err := userService.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)

	token, _, err := authService.Login(ctx, "admin", "secret123")
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, token))

	sess, err := authService.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)

	// logging out twice is fine
	assert.NoError(t, authService.Logout(ctx, token))
}

func TestAuthService_Authenticate_UnknownToken(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	sess, err := authService.Authenticate(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, sess)
}
