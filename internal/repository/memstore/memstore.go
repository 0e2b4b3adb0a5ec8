// Package memstore implements the repository contracts in memory. It backs
// DB_DRIVER=memory and the service and handler tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/google/uuid"
)

type edge struct {
	owner, relative uuid.UUID
}

type storedReport struct {
	report models.TestReport
	seq    int64
}

type state struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]models.User
	edges   []edge
	reports map[uuid.UUID]storedReport
	seq     int64
	now     func() time.Time
}

// Store owns the shared in-memory state. Its three fields satisfy the
// repository contracts.
type Store struct {
	Users     *UserStore
	Relatives *RelativeStore
	Reports   *ReportStore
	st        *state
}

func New() *Store {
	st := &state{
		users:   make(map[uuid.UUID]models.User),
		reports: make(map[uuid.UUID]storedReport),
		now:     time.Now,
	}
	return &Store{
		Users:     &UserStore{st: st},
		Relatives: &RelativeStore{st: st},
		Reports:   &ReportStore{st: st},
		st:        st,
	}
}

// SetClock replaces the time source used for CreatedAt stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.now = now
}

func (s *Store) Stores() repository.Stores {
	return repository.Stores{Users: s.Users, Relatives: s.Relatives, Reports: s.Reports}
}

// --- users ---

type UserStore struct {
	st *state
}

var _ repository.UserStore = (*UserStore)(nil)

func (u *UserStore) Create(_ context.Context, user *models.User) error {
	u.st.mu.Lock()
	defer u.st.mu.Unlock()
	return u.st.insertUser(user)
}

func (u *UserStore) CreateRelative(_ context.Context, relative *models.User, ownerID uuid.UUID) error {
	u.st.mu.Lock()
	defer u.st.mu.Unlock()
	if _, ok := u.st.users[ownerID]; !ok {
		return repository.ErrNotFound
	}
	if err := u.st.insertUser(relative); err != nil {
		return err
	}
	u.st.edges = append(u.st.edges, edge{owner: ownerID, relative: relative.ID})
	return nil
}

func (u *UserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u.st.mu.RLock()
	defer u.st.mu.RUnlock()
	user, ok := u.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u *UserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	u.st.mu.RLock()
	defer u.st.mu.RUnlock()
	for _, user := range u.st.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := u.FindByUsername(ctx, username)
	return err == nil, nil
}

func (u *UserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	u.st.mu.RLock()
	defer u.st.mu.RUnlock()
	for _, user := range u.st.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (u *UserStore) SearchActiveByName(_ context.Context, name string) ([]models.User, error) {
	u.st.mu.RLock()
	defer u.st.mu.RUnlock()
	out := []models.User{}
	for _, user := range u.st.users {
		if user.IsActive && strings.Contains(user.FullName, name) {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (st *state) insertUser(user *models.User) error {
	for _, existing := range st.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := st.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	st.users[user.ID] = *user
	return nil
}

// --- relatives ---

type RelativeStore struct {
	st *state
}

var _ repository.RelativeStore = (*RelativeStore)(nil)

func (r *RelativeStore) AddEdge(_ context.Context, ownerID, relativeID uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.users[ownerID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.st.users[relativeID]; !ok {
		return repository.ErrNotFound
	}
	for _, e := range r.st.edges {
		if e.owner == ownerID && e.relative == relativeID {
			return nil
		}
	}
	r.st.edges = append(r.st.edges, edge{owner: ownerID, relative: relativeID})
	return nil
}

func (r *RelativeStore) RemoveEdge(_ context.Context, ownerID, relativeID uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	kept := r.st.edges[:0]
	for _, e := range r.st.edges {
		if e.owner == ownerID && e.relative == relativeID {
			continue
		}
		kept = append(kept, e)
	}
	r.st.edges = kept
	return nil
}

func (r *RelativeStore) RelativesOf(_ context.Context, ownerID uuid.UUID) ([]models.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	out := []models.User{}
	for _, e := range r.st.edges {
		if e.owner == ownerID {
			out = append(out, r.st.users[e.relative])
		}
	}
	return out, nil
}

func (r *RelativeStore) OwnersOf(_ context.Context, relativeID uuid.UUID) ([]models.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	out := []models.User{}
	for _, e := range r.st.edges {
		if e.relative == relativeID {
			out = append(out, r.st.users[e.owner])
		}
	}
	return out, nil
}

// --- reports ---

type ReportStore struct {
	st *state
}

var _ repository.ReportStore = (*ReportStore)(nil)

func (r *ReportStore) Create(_ context.Context, report *models.TestReport) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.users[report.UserID]; !ok {
		return repository.ErrNotFound
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = r.st.now()
	r.st.seq++
	stored := *report
	stored.User = models.User{}
	r.st.reports[report.ID] = storedReport{report: stored, seq: r.st.seq}
	return nil
}

func (r *ReportStore) FindByID(_ context.Context, id uuid.UUID) (*models.TestReport, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	sr, ok := r.st.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	report := r.st.withUser(sr.report)
	return &report, nil
}

func (r *ReportStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.TestReport, error) {
	return r.filter(func(tr models.TestReport) bool { return tr.UserID == userID }), nil
}

func (r *ReportStore) ListByUserAndDisease(_ context.Context, userID uuid.UUID, disease models.DiseaseType) ([]models.TestReport, error) {
	return r.filter(func(tr models.TestReport) bool {
		return tr.UserID == userID && tr.DiseaseType == disease
	}), nil
}

func (r *ReportStore) ListByUserIDs(_ context.Context, userIDs []uuid.UUID) ([]models.TestReport, error) {
	set := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		set[id] = struct{}{}
	}
	return r.filter(func(tr models.TestReport) bool {
		_, ok := set[tr.UserID]
		return ok
	}), nil
}

func (r *ReportStore) ListByUserBetween(_ context.Context, userID uuid.UUID, from, to time.Time) ([]models.TestReport, error) {
	return r.filter(func(tr models.TestReport) bool {
		return tr.UserID == userID && !tr.CreatedAt.Before(from) && !tr.CreatedAt.After(to)
	}), nil
}

func (r *ReportStore) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	list, _ := r.ListByUser(ctx, userID)
	return int64(len(list)), nil
}

func (r *ReportStore) CountByUserAndDisease(ctx context.Context, userID uuid.UUID, disease models.DiseaseType) (int64, error) {
	list, _ := r.ListByUserAndDisease(ctx, userID, disease)
	return int64(len(list)), nil
}

// filter returns matching reports newest first; insertion order breaks ties
// between equal timestamps.
func (r *ReportStore) filter(keep func(models.TestReport) bool) []models.TestReport {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	matched := []storedReport{}
	for _, sr := range r.st.reports {
		if keep(sr.report) {
			matched = append(matched, sr)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.report.CreatedAt.Equal(b.report.CreatedAt) {
			return a.report.CreatedAt.After(b.report.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]models.TestReport, len(matched))
	for i, sr := range matched {
		out[i] = r.st.withUser(sr.report)
	}
	return out
}

func (st *state) withUser(report models.TestReport) models.TestReport {
	report.User = st.users[report.UserID]
	return report
}
