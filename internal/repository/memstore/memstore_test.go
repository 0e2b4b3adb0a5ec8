package memstore

import (
	"context"
	"testing"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(name string) *models.User {
	return &models.User{Username: name, Email: name + "@x.com", FullName: name, IsActive: true, Role: models.RolePrimary}
}

func TestCreateRejectsDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Users.Create(ctx, user("alice")))
	assert.ErrorIs(t, s.Users.Create(ctx, user("alice")), repository.ErrDuplicate)

	dupEmail := user("other")
	dupEmail.Email = "alice@x.com"
	assert.ErrorIs(t, s.Users.Create(ctx, dupEmail), repository.ErrDuplicate)
}

func TestCreateRelativeIsAllOrNothing(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice := user("alice")
	require.NoError(t, s.Users.Create(ctx, alice))

	assert.ErrorIs(t, s.Users.CreateRelative(ctx, user("rita"), uuid.New()), repository.ErrNotFound)
	exists, _ := s.Users.ExistsByUsername(ctx, "rita")
	assert.False(t, exists)

	assert.ErrorIs(t, s.Users.CreateRelative(ctx, user("alice"), alice.ID), repository.ErrDuplicate)
	relatives, _ := s.Relatives.RelativesOf(ctx, alice.ID)
	assert.Empty(t, relatives)

	rita := user("rita")
	require.NoError(t, s.Users.CreateRelative(ctx, rita, alice.ID))
	owners, _ := s.Relatives.OwnersOf(ctx, rita.ID)
	require.Len(t, owners, 1)
	assert.Equal(t, alice.ID, owners[0].ID)
}

func TestReportsCarryUserAndAreIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice := user("alice")
	require.NoError(t, s.Users.Create(ctx, alice))

	report := &models.TestReport{UserID: alice.ID, DiseaseType: models.DiseaseHeart}
	require.NoError(t, s.Reports.Create(ctx, report))
	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.False(t, report.CreatedAt.IsZero())

	report.PredictionMessage = "mutated after save"
	got, err := s.Reports.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PredictionMessage)
	assert.Equal(t, "alice", got.User.Username)

	assert.ErrorIs(t, s.Reports.Create(ctx, &models.TestReport{UserID: uuid.New()}), repository.ErrNotFound)
}
