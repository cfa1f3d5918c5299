package services

import (
	"context"
	"fmt"

	"github.com/rentafind/rentafind/internal/server/models"
	"github.com/rentafind/rentafind/internal/server/repositories/users"
)

// UserService exposes the account profile view and updates.
type UserService struct {
	users users.Repository
}

func NewUserService(users users.Repository) *UserService {
	return &UserService{users: users}
}

// Profile returns the account for id, or common.ErrorNotFound.
func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdatePhoneNumber replaces the account's phone number and returns the
// updated account.
func (s *UserService) UpdatePhoneNumber(ctx context.Context, id, phoneNumber string) (*models.User, error) {
	user, err := s.users.UpdatePhoneNumber(ctx, id, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("updating phone number: %w", err)
	}
	return user, nil
}
