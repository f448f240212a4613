package service

import (
	"context"
	"errors"
	"time"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/internal/session"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"github.com/lamnt/koctrack-backend/pkg/util"
)

// ErrInvalidCredentials is deliberately the only credential failure exposed:
// the client never learns whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *model.User, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions session.Store
}

func NewAuthService(userRepo repository.UserRepository, sessions session.Store) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		// logged for operators, invisible to the client
		logger.Warn("Login attempt for unknown username", map[string]interface{}{
			"username": username,
		})
		return "", nil, ErrInvalidCredentials
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login attempt with wrong password", map[string]interface{}{
			"user_id": user.ID,
		})
		return "", nil, ErrInvalidCredentials
	}

	token := util.NewSessionToken()
	err = s.sessions.Put(ctx, token, session.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IssuedAt: time.Now(),
	})
	if err != nil {
		logger.Error("Failed to store session", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return token, user, nil
}

// Logout revokes a token. It succeeds even when the token is already gone.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a bearer token to its session, or nil when the token
// was never issued or has expired.
func (s *authService) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	return s.sessions.Get(ctx, token)
}
