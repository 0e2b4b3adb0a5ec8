package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diagnoai/diagno-backend/internal/config"
	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/diagnoai/diagno-backend/internal/repository/memstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

type testEnv struct {
	cfg       *config.Config
	store     *memstore.Store
	access    *AccessService
	auth      *AuthService
	relatives *RelativeService
	reports   *ReportService
}

func newTestConfig() *config.Config {
	return &config.Config{
		DBDriver:          config.DriverMemory,
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		PredictionTimeout: 2 * time.Second,
		ReportAccessMode:  string(AccessOwnerRelatives),
	}
}

func newTestEnv(t *testing.T, mode AccessMode) *testEnv {
	t.Helper()
	cfg := newTestConfig()
	store := memstore.New()
	return newTestEnvWith(cfg, store, store.Stores(), mode)
}

func newTestEnvWith(cfg *config.Config, store *memstore.Store, stores repository.Stores, mode AccessMode) *testEnv {
	access := NewAccessService(stores.Relatives, stores.Reports, mode)
	return &testEnv{
		cfg:       cfg,
		store:     store,
		access:    access,
		auth:      NewAuthService(stores.Users, access, cfg),
		relatives: NewRelativeService(stores.Relatives),
		reports:   NewReportService(stores.Users, stores.Reports, access),
	}
}

func (e *testEnv) signup(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.auth.Signup(context.Background(), &dto.SignupRequest{
		Username: username,
		FullName: username + " Test",
		Email:    username + "@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) addRelative(t *testing.T, owner *models.User, username string) *models.User {
	t.Helper()
	relative, err := e.auth.AddRelative(context.Background(), identityOf(owner), &dto.AddRelativeRequest{
		Username: username,
		FullName: username + " Test",
		Email:    username + "@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return relative
}

func (e *testEnv) saveReport(t *testing.T, owner *models.User, disease models.DiseaseType) *models.TestReport {
	t.Helper()
	report, err := e.reports.Save(context.Background(), owner.ID, NewReport{
		Disease:   disease,
		Result:    1,
		InputData: `{"age":50}`,
		Message:   "risk",
	})
	require.NoError(t, err)
	return report
}

func identityOf(u *models.User) principal.Identity {
	return principal.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// brokenRelatives fails every graph read.
type brokenRelatives struct {
	repository.RelativeStore
}

func (brokenRelatives) RelativesOf(context.Context, uuid.UUID) ([]models.User, error) {
	return nil, errStoreDown
}

func (brokenRelatives) OwnersOf(context.Context, uuid.UUID) ([]models.User, error) {
	return nil, errStoreDown
}

// brokenReports fails listing and counting.
type brokenReports struct {
	repository.ReportStore
}

func (brokenReports) ListByUserIDs(context.Context, []uuid.UUID) ([]models.TestReport, error) {
	return nil, errStoreDown
}

func (brokenReports) CountByUser(context.Context, uuid.UUID) (int64, error) {
	return 0, errStoreDown
}

// lateUsers hides existing accounts from the availability checks, the way a
// concurrent signup that commits between check and insert would. Lookups
// after the first emailChecks calls see the real store.
type lateUsers struct {
	repository.UserStore
	emailChecks int
}

func (*lateUsers) ExistsByUsername(context.Context, string) (bool, error) {
	return false, nil
}

func (u *lateUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if u.emailChecks > 0 {
		u.emailChecks--
		return false, nil
	}
	return u.UserStore.ExistsByEmail(ctx, email)
}
