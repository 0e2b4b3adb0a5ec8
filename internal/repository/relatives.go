package repository

import (
	"context"
	"fmt"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRelativeStore struct {
	db *gorm.DB
}

func NewRelativeStore(db *gorm.DB) *GormRelativeStore {
	return &GormRelativeStore{db: db}
}

// AddEdge links ownerID -> relativeID. Both users must exist. Inserting an
// edge that already exists is a no-op.
func (s *GormRelativeStore) AddEdge(ctx context.Context, ownerID, relativeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		want := int64(2)
		if ownerID == relativeID {
			want = 1
		}
		var n int64
		if err := tx.Model(&models.User{}).Where("id IN ?", []uuid.UUID{ownerID, relativeID}).Count(&n).Error; err != nil {
			return err
		}
		if n != want {
			return ErrNotFound
		}

		edge := models.UserRelative{UserID: ownerID, RelativeID: relativeID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&edge).Error; err != nil {
			return fmt.Errorf("failed to add relative edge: %w", err)
		}
		return nil
	})
}

func (s *GormRelativeStore) RemoveEdge(ctx context.Context, ownerID, relativeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND relative_id = ?", ownerID, relativeID).
		Delete(&models.UserRelative{}).Error
}

func (s *GormRelativeStore) RelativesOf(ctx context.Context, ownerID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN user_relatives ur ON ur.relative_id = users.id").
		Where("ur.user_id = ?", ownerID).
		Order("ur.created_at").
		Find(&users).Error
	return users, err
}

func (s *GormRelativeStore) OwnersOf(ctx context.Context, relativeID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN user_relatives ur ON ur.user_id = users.id").
		Where("ur.relative_id = ?", relativeID).
		Order("ur.created_at").
		Find(&users).Error
	return users, err
}
