package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", duplicate(err))
	}
	return nil
}

func (s *GormUserStore) CreateRelative(ctx context.Context, relative *models.User, ownerID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).First(&owner, "id = ?", ownerID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Create(relative).Error; err != nil {
			return fmt.Errorf("failed to create relative: %w", duplicate(err))
		}
		edge := models.UserRelative{UserID: ownerID, RelativeID: relative.ID}
		if err := tx.Omit(clause.Associations).Create(&edge).Error; err != nil {
			return fmt.Errorf("failed to link relative: %w", err)
		}
		return nil
	})
}

func (s *GormUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (s *GormUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (s *GormUserStore) SearchActiveByName(ctx context.Context, name string) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND full_name LIKE ?", true, "%"+name+"%").
		Order("full_name").
		Find(&users).Error
	return users, err
}

// notFound maps gorm's not-found sentinel onto ErrNotFound and passes other
// errors through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// duplicate maps unique-constraint violations onto ErrDuplicate. It relies on
// gorm.Config.TranslateError being enabled.
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
