package service

import (
	"context"
	"log/slog"

	"github.com/tabkeep/tabkeep/internal/auth"
	"github.com/tabkeep/tabkeep/internal/models"
)

// AuthService pairs an Authenticator with session token issuance. The
// user ID inside the token is the account ID every ledger operation is
// keyed by.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, tokens: tokens}
}

// Register creates an account and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (string, *models.User, error) {
	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return token, user, nil
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}

	slog.Debug("user logged in", "user_id", user.ID)
	return token, user, nil
}
