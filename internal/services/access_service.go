package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/google/uuid"
)

// AccessMode selects how single-report reads are authorized.
type AccessMode string

const (
	// AccessOwnerRelatives allows the owner and the owner's own relatives
	// only. A RELATIVE reading a report of the primary who linked them is
	// denied.
	AccessOwnerRelatives AccessMode = "owner_relatives"
	// AccessLinked allows every user in the caller's accessible set, matching
	// the report listings.
	AccessLinked AccessMode = "linked"
)

func ParseAccessMode(s string) (AccessMode, error) {
	switch AccessMode(s) {
	case AccessOwnerRelatives, AccessLinked:
		return AccessMode(s), nil
	default:
		return "", fmt.Errorf("unknown report access mode %q", s)
	}
}

type AccessService struct {
	relatives repository.RelativeStore
	reports   repository.ReportStore
	mode      AccessMode
}

func NewAccessService(relatives repository.RelativeStore, reports repository.ReportStore, mode AccessMode) *AccessService {
	return &AccessService{relatives: relatives, reports: reports, mode: mode}
}

func (s *AccessService) Mode() AccessMode {
	return s.mode
}

// AccessibleUserIDs returns the users whose reports the caller may list: the
// caller plus its relatives (PRIMARY) or the users who linked it (RELATIVE).
// The caller is always first. A failed lookup is logged and the result falls
// back to the caller alone.
func (s *AccessService) AccessibleUserIDs(ctx context.Context, id principal.Identity) []uuid.UUID {
	ids := []uuid.UUID{id.UserID}

	var (
		linked []models.User
		err    error
	)
	switch id.Role {
	case models.RolePrimary:
		linked, err = s.relatives.RelativesOf(ctx, id.UserID)
	case models.RoleRelative:
		linked, err = s.relatives.OwnersOf(ctx, id.UserID)
	default:
		slog.Warn("accessible users requested for unknown role", "user_id", id.UserID.String(), "role", string(id.Role))
		return ids
	}
	if err != nil {
		slog.Error("failed to resolve linked users", "user_id", id.UserID.String(), "action", "accessible_users", "error", err)
		return ids
	}

	seen := map[uuid.UUID]bool{id.UserID: true}
	for _, u := range linked {
		if !seen[u.ID] {
			seen[u.ID] = true
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// CanAccessReport is true when userID owns the report or the owner is one of
// userID's relatives. Users who linked userID are not consulted.
func (s *AccessService) CanAccessReport(ctx context.Context, userID, reportID uuid.UUID) (bool, error) {
	report, err := s.findReport(ctx, reportID)
	if err != nil {
		return false, err
	}
	return s.ownerOrRelative(ctx, userID, report.UserID)
}

// CanAccessReportLinked is true when the report owner is in the caller's
// accessible set.
func (s *AccessService) CanAccessReportLinked(ctx context.Context, id principal.Identity, reportID uuid.UUID) (bool, error) {
	report, err := s.findReport(ctx, reportID)
	if err != nil {
		return false, err
	}
	return s.inAccessibleSet(ctx, id, report.UserID), nil
}

// CanView authorizes a read of an already loaded report under the configured
// mode.
func (s *AccessService) CanView(ctx context.Context, id principal.Identity, report *models.TestReport) (bool, error) {
	switch s.mode {
	case AccessLinked:
		return s.inAccessibleSet(ctx, id, report.UserID), nil
	default:
		return s.ownerOrRelative(ctx, id.UserID, report.UserID)
	}
}

// HasRelativeAccess reports whether any primary user has linked relativeID.
func (s *AccessService) HasRelativeAccess(ctx context.Context, relativeID uuid.UUID) (bool, error) {
	owners, err := s.relatives.OwnersOf(ctx, relativeID)
	if err != nil {
		return false, fmt.Errorf("failed to load owners: %w", err)
	}
	return len(owners) > 0, nil
}

func (s *AccessService) findReport(ctx context.Context, reportID uuid.UUID) (*models.TestReport, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *AccessService) ownerOrRelative(ctx context.Context, userID, ownerID uuid.UUID) (bool, error) {
	if ownerID == userID {
		return true, nil
	}
	relatives, err := s.relatives.RelativesOf(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load relatives: %w", err)
	}
	for _, r := range relatives {
		if r.ID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (s *AccessService) inAccessibleSet(ctx context.Context, id principal.Identity, ownerID uuid.UUID) bool {
	for _, uid := range s.AccessibleUserIDs(ctx, id) {
		if uid == ownerID {
			return true
		}
	}
	return false
}
