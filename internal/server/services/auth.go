// Package services contains the application services behind the REST
// handlers: account lifecycle and listing management.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentafind/rentafind/internal/common"
	"github.com/rentafind/rentafind/internal/server/auth"
	"github.com/rentafind/rentafind/internal/server/models"
	"github.com/rentafind/rentafind/internal/server/repositories/users"
)

// AuthService signs users up and in, issuing bearer tokens.
type AuthService struct {
	users         users.Repository
	secretKey     []byte
	tokenValidity time.Duration
}

func NewAuthService(users users.Repository, secretKey []byte, tokenValidity time.Duration) *AuthService {
	return &AuthService{users: users, secretKey: secretKey, tokenValidity: tokenValidity}
}

// Signup creates an account and returns it with a fresh token. Taken
// usernames and emails map to the dedicated sentinel errors so the handler
// can surface the exact conflict.
func (s *AuthService) Signup(ctx context.Context, username, email, password, phoneNumber string) (*models.User, string, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("checking username: %w", err)
	}
	if taken {
		return nil, "", common.ErrorUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return nil, "", common.ErrorEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  phoneNumber,
	}
	user, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.secretKey, s.tokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return user, token, nil
}

// Login verifies the credentials and issues a token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.secretKey, s.tokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return user, token, nil
}

// ValidateToken resolves a bearer token to an account ID for the middleware.
func (s *AuthService) ValidateToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.secretKey)
}
