package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/swachhjanta/backend/internal/models"
	"github.com/swachhjanta/backend/internal/store"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrReportNotFound = errors.New("report not found")
)

// ReportService owns the report lifecycle: creation with a generated public
// identifier, status transitions and assignment.
type ReportService struct {
	store store.Store
}

func NewReportService(st store.Store) *ReportService {
	return &ReportService{store: st}
}

type CreateReportInput struct {
	UserID      uuid.UUID
	Category    models.IssueCategory
	Description string
	PhotoURL    string
	Latitude    *float64
	Longitude   *float64
	Address     string
}

func (s *ReportService) Create(input CreateReportInput) (*models.Report, error) {
	if input.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !models.ValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, input.Category)
	}
	if input.Latitude == nil || input.Longitude == nil {
		return nil, fmt.Errorf("%w: latitude and longitude are required", ErrValidation)
	}
	if *input.Latitude < -90 || *input.Latitude > 90 {
		return nil, fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
	}
	if *input.Longitude < -180 || *input.Longitude > 180 {
		return nil, fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
	}

	report := &models.Report{
		ID:          uuid.New(),
		PublicID:    NewPublicID(),
		UserID:      input.UserID,
		Category:    input.Category,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		Address:     input.Address,
		Status:      models.StatusPending,
		Priority:    "medium",
	}

	if err := s.store.CreateReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

// NewPublicID generates a human-facing report identifier of the form
// SW<year><6-digit random>, e.g. SW2024004821. The draw is not checked
// against the store, so a collision rejects the insert on the unique index.
func NewPublicID() string {
	return fmt.Sprintf("SW%d%06d", time.Now().Year(), rand.Intn(1000000))
}

// UpdateStatus moves a report to the given status. Transitions are
// unconditional: any status may move to any other, including re-opening a
// resolved report.
func (s *ReportService) UpdateStatus(id uuid.UUID, status models.ReportStatus) (*models.Report, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}
	report, err := s.store.UpdateReportStatus(id, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// Assign hands a report to an authority employee and forces its status to
// in_progress regardless of the prior status. The employee id is not
// validated against the user table.
func (s *ReportService) Assign(id uuid.UUID, employeeID uuid.UUID) (*models.Report, error) {
	report, err := s.store.AssignReport(id, employeeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *ReportService) GetByID(id uuid.UUID) (*models.Report, error) {
	report, err := s.store.GetReportByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *ReportService) GetByPublicID(publicID string) (*models.Report, error) {
	report, err := s.store.GetReportByPublicID(publicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// ListForUser returns the reports created by a user, newest first.
func (s *ReportService) ListForUser(userID uuid.UUID) ([]models.Report, error) {
	return s.store.ListReportsByUser(userID)
}

// ListAll returns every report, newest first. Authority-only; the caller's
// boundary enforces the role check.
func (s *ReportService) ListAll() ([]models.Report, error) {
	return s.store.ListAllReports()
}

type SubmitFeedbackInput struct {
	ReportID          uuid.UUID
	UserID            uuid.UUID
	Rating            int
	SatisfactionLevel string
	Comment           string
	ServiceQuality    int
	ResponseTime      int
}

// SubmitFeedback stores a citizen rating for a report. Feedback is write-only
// storage for now; it does not feed employee performance figures.
func (s *ReportService) SubmitFeedback(input SubmitFeedbackInput) (*models.ReportFeedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.GetByID(input.ReportID); err != nil {
		return nil, err
	}
	feedback := &models.ReportFeedback{
		ID:                uuid.New(),
		ReportID:          input.ReportID,
		UserID:            input.UserID,
		Rating:            input.Rating,
		SatisfactionLevel: input.SatisfactionLevel,
		Comment:           input.Comment,
		ServiceQuality:    input.ServiceQuality,
		ResponseTime:      input.ResponseTime,
	}
	if err := s.store.CreateFeedback(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}
