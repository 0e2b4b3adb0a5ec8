// Package repository holds the storage contracts used by the services and
// their gorm implementations. The memstore subpackage provides in-memory
// implementations of the same contracts.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	// CreateRelative inserts a RELATIVE user and the ownerID -> user edge as
	// one unit of work. Either both rows exist afterwards or neither does.
	CreateRelative(ctx context.Context, relative *models.User, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SearchActiveByName(ctx context.Context, name string) ([]models.User, error)
}

// RelativeStore is the relative graph: a single edge list read in both
// directions.
type RelativeStore interface {
	AddEdge(ctx context.Context, ownerID, relativeID uuid.UUID) error
	RemoveEdge(ctx context.Context, ownerID, relativeID uuid.UUID) error
	RelativesOf(ctx context.Context, ownerID uuid.UUID) ([]models.User, error)
	OwnersOf(ctx context.Context, relativeID uuid.UUID) ([]models.User, error)
}

// ReportStore lists are ordered newest first and carry the owning User.
type ReportStore interface {
	Create(ctx context.Context, report *models.TestReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.TestReport, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TestReport, error)
	ListByUserAndDisease(ctx context.Context, userID uuid.UUID, disease models.DiseaseType) ([]models.TestReport, error)
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.TestReport, error)
	ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.TestReport, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByUserAndDisease(ctx context.Context, userID uuid.UUID, disease models.DiseaseType) (int64, error)
}

// Stores bundles the three stores a process runs with.
type Stores struct {
	Users     UserStore
	Relatives RelativeStore
	Reports   ReportStore
}
