package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/swachhjanta/backend/internal/models"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UpsertUser(user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Normalize()
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return s.GetUser(user.ID)
}

func (s *GormStore) ListAuthorityUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("user_type = ?", models.UserTypeAuthority).
		Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) CreateReport(report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if err := s.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (s *GormStore) GetReportByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *GormStore) GetReportByPublicID(publicID string) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "public_id = ?", publicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *GormStore) ListReportsByUser(userID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *GormStore) ListReportsByAssignee(employeeID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Where("assigned_to = ?", employeeID).
		Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *GormStore) ListAllReports() ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *GormStore) UpdateReportStatus(id uuid.UUID, status models.ReportStatus) (*models.Report, error) {
	result := s.db.Model(&models.Report{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetReportByID(id)
}

func (s *GormStore) AssignReport(id uuid.UUID, employeeID uuid.UUID) (*models.Report, error) {
	now := time.Now()
	result := s.db.Model(&models.Report{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_to": employeeID,
			"assigned_at": now,
			"status":      models.StatusInProgress,
			"updated_at":  now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetReportByID(id)
}

func (s *GormStore) CreateFeedback(feedback *models.ReportFeedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	if err := s.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (s *GormStore) CreateRefreshToken(token *models.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	return s.db.Create(token).Error
}

func (s *GormStore) GetActiveRefreshToken(tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := s.db.First(&token, "token_hash = ? AND revoked = false", tokenHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (s *GormStore) RevokeRefreshToken(tokenHash string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}
