package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/google/uuid"
)

// FallbackReportCount is what AccessibleCount returns when the count cannot be
// computed.
const FallbackReportCount int64 = 0

// NewReport is the content of a report before it is stored.
type NewReport struct {
	Disease     models.DiseaseType
	Result      int
	Probability *float64
	InputData   string
	Message     string
}

type ReportService struct {
	users   repository.UserStore
	reports repository.ReportStore
	access  *AccessService
}

func NewReportService(users repository.UserStore, reports repository.ReportStore, access *AccessService) *ReportService {
	return &ReportService{users: users, reports: reports, access: access}
}

func (s *ReportService) Save(ctx context.Context, userID uuid.UUID, in NewReport) (*models.TestReport, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	report := models.TestReport{
		ID:                uuid.New(),
		UserID:            user.ID,
		DiseaseType:       in.Disease,
		PredictionResult:  in.Result,
		Probability:       in.Probability,
		InputData:         in.InputData,
		PredictionMessage: in.Message,
	}
	if err := s.reports.Create(ctx, &report); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	report.User = *user
	return &report, nil
}

// SaveAs stores a report on behalf of the caller. Only PRIMARY users own
// health data.
func (s *ReportService) SaveAs(ctx context.Context, caller principal.Identity, in NewReport) (*models.TestReport, error) {
	if !caller.IsPrimary() {
		return nil, ErrPrimaryRequired
	}
	return s.Save(ctx, caller.UserID, in)
}

func (s *ReportService) ByUser(ctx context.Context, userID uuid.UUID) ([]models.TestReport, error) {
	return s.reports.ListByUser(ctx, userID)
}

func (s *ReportService) ByUserAndDisease(ctx context.Context, userID uuid.UUID, disease models.DiseaseType) ([]models.TestReport, error) {
	return s.reports.ListByUserAndDisease(ctx, userID, disease)
}

// ByUserIDs loads the reports of all listed users in a single query.
func (s *ReportService) ByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.TestReport, error) {
	return s.reports.ListByUserIDs(ctx, userIDs)
}

func (s *ReportService) ByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.TestReport, error) {
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	return s.reports.ListByUserBetween(ctx, userID, from, to)
}

func (s *ReportService) ByID(ctx context.Context, reportID uuid.UUID) (*models.TestReport, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// View loads a report and checks that the caller may read it.
func (s *ReportService) View(ctx context.Context, caller principal.Identity, reportID uuid.UUID) (*models.TestReport, error) {
	report, err := s.ByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	ok, err := s.access.CanView(ctx, caller, report)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize report read: %w", err)
	}
	if !ok {
		return nil, ErrAccessDenied
	}
	return report, nil
}

func (s *ReportService) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.reports.CountByUser(ctx, userID)
}

func (s *ReportService) CountByUserAndDisease(ctx context.Context, userID uuid.UUID, disease models.DiseaseType) (int64, error) {
	return s.reports.CountByUserAndDisease(ctx, userID, disease)
}

// Accessible lists every report the caller may see, newest first. Failures
// are logged and produce an empty list.
func (s *ReportService) Accessible(ctx context.Context, caller principal.Identity) []models.TestReport {
	ids := s.access.AccessibleUserIDs(ctx, caller)
	reports, err := s.reports.ListByUserIDs(ctx, ids)
	if err != nil {
		slog.Error("failed to list accessible reports", "user_id", caller.UserID.String(), "action", "accessible_reports", "error", err)
		return []models.TestReport{}
	}
	return reports
}

// AccessibleCount sums the report counts over the caller's accessible set.
// Any failure yields FallbackReportCount.
func (s *ReportService) AccessibleCount(ctx context.Context, caller principal.Identity) int64 {
	var total int64
	for _, id := range s.access.AccessibleUserIDs(ctx, caller) {
		n, err := s.reports.CountByUser(ctx, id)
		if err != nil {
			slog.Error("failed to count accessible reports", "user_id", caller.UserID.String(), "action", "accessible_count", "error", err)
			return FallbackReportCount
		}
		total += n
	}
	return total
}
