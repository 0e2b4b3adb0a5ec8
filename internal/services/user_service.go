package services

import (
	"context"
	"errors"
	"strings"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/google/uuid"
)

type UserService struct {
	users repository.UserStore
}

func NewUserService(users repository.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Search returns active users whose full name contains name. An empty query
// matches nobody.
func (s *UserService) Search(ctx context.Context, name string) ([]models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []models.User{}, nil
	}
	return s.users.SearchActiveByName(ctx, name)
}
