package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForUser returns a GORM scope that filters by user_id.
func ForUser(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// ForUsers filters by a set of user ids in one IN clause.
func ForUsers(userIDs []uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id IN ?", userIDs)
	}
}

func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
