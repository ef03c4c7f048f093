package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/likestem/authd/internal/auth/domain"
	"github.com/likestem/authd/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
