package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *GormReportStore {
	return &GormReportStore{db: db}
}

func (s *GormReportStore) Create(ctx context.Context, report *models.TestReport) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create test report: %w", err)
	}
	return nil
}

func (s *GormReportStore) FindByID(ctx context.Context, id uuid.UUID) (*models.TestReport, error) {
	var report models.TestReport
	if err := s.db.WithContext(ctx).Preload("User").First(&report, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &report, nil
}

func (s *GormReportStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TestReport, error) {
	return s.list(ctx, ForUser(userID))
}

func (s *GormReportStore) ListByUserAndDisease(ctx context.Context, userID uuid.UUID, disease models.DiseaseType) ([]models.TestReport, error) {
	return s.list(ctx, ForUser(userID), func(db *gorm.DB) *gorm.DB {
		return db.Where("disease_type = ?", disease)
	})
}

// ListByUserIDs fetches the reports of every listed user in one query.
func (s *GormReportStore) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.TestReport, error) {
	if len(userIDs) == 0 {
		return []models.TestReport{}, nil
	}
	return s.list(ctx, ForUsers(userIDs))
}

func (s *GormReportStore) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.TestReport, error) {
	return s.list(ctx, ForUser(userID), func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at BETWEEN ? AND ?", from, to)
	})
}

func (s *GormReportStore) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.TestReport{}).Scopes(ForUser(userID)).Count(&n).Error
	return n, err
}

func (s *GormReportStore) CountByUserAndDisease(ctx context.Context, userID uuid.UUID, disease models.DiseaseType) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.TestReport{}).
		Scopes(ForUser(userID)).
		Where("disease_type = ?", disease).
		Count(&n).Error
	return n, err
}

func (s *GormReportStore) list(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]models.TestReport, error) {
	reports := []models.TestReport{}
	err := s.db.WithContext(ctx).
		Preload("User").
		Scopes(scopes...).
		Scopes(NewestFirst).
		Find(&reports).Error
	return reports, err
}
