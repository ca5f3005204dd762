package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/splitpay/splitpay/internal/auth"
	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/storage"
)

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	authenticator auth.Authenticator
	jwt           *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, jwt *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{authenticator: authenticator, jwt: jwt, store: store}
}

// Register creates an account and returns the user with a session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, "", fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile returns the user for an authenticated session.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}
