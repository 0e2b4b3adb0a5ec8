package services

import (
	"context"
	"errors"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/google/uuid"
)

// RelativeService manages the owner -> relative edges. Every edge is stored
// once and read from either end.
type RelativeService struct {
	relatives repository.RelativeStore
}

func NewRelativeService(relatives repository.RelativeStore) *RelativeService {
	return &RelativeService{relatives: relatives}
}

// AddEdge links two existing users. Account creation links a new relative
// through UserStore.CreateRelative instead, so the user row and the edge
// commit together.
func (s *RelativeService) AddEdge(ctx context.Context, ownerID, relativeID uuid.UUID) error {
	if err := s.relatives.AddEdge(ctx, ownerID, relativeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// RemoveEdge is a no-op when the edge does not exist.
func (s *RelativeService) RemoveEdge(ctx context.Context, ownerID, relativeID uuid.UUID) error {
	return s.relatives.RemoveEdge(ctx, ownerID, relativeID)
}

func (s *RelativeService) Relatives(ctx context.Context, ownerID uuid.UUID) ([]models.User, error) {
	return s.relatives.RelativesOf(ctx, ownerID)
}

// Owners is the reverse view of Relatives: everyone who linked relativeID.
func (s *RelativeService) Owners(ctx context.Context, relativeID uuid.UUID) ([]models.User, error) {
	return s.relatives.OwnersOf(ctx, relativeID)
}
