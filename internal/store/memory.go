package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swachhjanta/backend/internal/models"
)

// MemoryStore is a map-backed Store with the same observable semantics as
// GormStore. It backs the test suites and local development without Postgres.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]models.User
	reports  map[uuid.UUID]models.Report
	feedback map[uuid.UUID]models.ReportFeedback
	tokens   map[string]models.RefreshToken
	seq      int64
	order    map[uuid.UUID]int64 // report insertion order, tiebreak for equal timestamps
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uuid.UUID]models.User),
		reports:  make(map[uuid.UUID]models.Report),
		feedback: make(map[uuid.UUID]models.ReportFeedback),
		tokens:   make(map[string]models.RefreshToken),
		order:    make(map[uuid.UUID]int64),
	}
}

func (s *MemoryStore) GetUser(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email != nil && *user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpsertUser(user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Normalize()
	now := time.Now()
	if existing, ok := s.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.users[user.ID] = *user
	u := s.users[user.ID]
	return &u, nil
}

func (s *MemoryStore) ListAuthorityUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.User
	for _, user := range s.users {
		if user.UserType == models.UserTypeAuthority {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) CreateReport(report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	if report.UpdatedAt.IsZero() {
		report.UpdatedAt = now
	}
	s.seq++
	s.order[report.ID] = s.seq
	s.reports[report.ID] = *report
	return nil
}

func (s *MemoryStore) GetReportByID(id uuid.UUID) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &report, nil
}

func (s *MemoryStore) GetReportByPublicID(publicID string) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, report := range s.reports {
		if report.PublicID == publicID {
			r := report
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListReportsByUser(userID uuid.UUID) ([]models.Report, error) {
	return s.listReports(func(r models.Report) bool { return r.UserID == userID }), nil
}

func (s *MemoryStore) ListReportsByAssignee(employeeID uuid.UUID) ([]models.Report, error) {
	return s.listReports(func(r models.Report) bool {
		return r.AssignedTo != nil && *r.AssignedTo == employeeID
	}), nil
}

func (s *MemoryStore) ListAllReports() ([]models.Report, error) {
	return s.listReports(func(models.Report) bool { return true }), nil
}

func (s *MemoryStore) listReports(match func(models.Report) bool) []models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Report, 0)
	for _, report := range s.reports {
		if match(report) {
			out = append(out, report)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return s.order[a.ID] > s.order[b.ID]
	})
	return out
}

func (s *MemoryStore) UpdateReportStatus(id uuid.UUID, status models.ReportStatus) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	report.Status = status
	report.UpdatedAt = time.Now()
	s.reports[id] = report
	return &report, nil
}

func (s *MemoryStore) AssignReport(id uuid.UUID, employeeID uuid.UUID) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now()
	report.AssignedTo = &employeeID
	report.AssignedAt = &now
	report.Status = models.StatusInProgress
	report.UpdatedAt = now
	s.reports[id] = report
	return &report, nil
}

func (s *MemoryStore) CreateFeedback(feedback *models.ReportFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now()
	}
	s.feedback[feedback.ID] = *feedback
	return nil
}

func (s *MemoryStore) CreateRefreshToken(token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	s.tokens[token.TokenHash] = *token
	return nil
}

func (s *MemoryStore) GetActiveRefreshToken(tokenHash string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[tokenHash]
	if !ok || token.Revoked {
		return nil, ErrNotFound
	}
	return &token, nil
}

func (s *MemoryStore) RevokeRefreshToken(tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.tokens[tokenHash]; ok {
		token.Revoked = true
		s.tokens[tokenHash] = token
	}
	return nil
}
