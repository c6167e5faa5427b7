// Package store is the persistence layer: users, reports, feedback and
// refresh tokens behind a single interface so services can be exercised
// against Postgres or an in-memory implementation.
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/swachhjanta/backend/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("record not found")

type Store interface {
	// Users
	GetUser(id uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	// UpsertUser inserts or replaces the row keyed by user.ID.
	UpsertUser(user *models.User) (*models.User, error)
	ListAuthorityUsers() ([]models.User, error)

	// Reports. List methods return newest first by creation time.
	CreateReport(report *models.Report) error
	GetReportByID(id uuid.UUID) (*models.Report, error)
	GetReportByPublicID(publicID string) (*models.Report, error)
	ListReportsByUser(userID uuid.UUID) ([]models.Report, error)
	ListReportsByAssignee(employeeID uuid.UUID) ([]models.Report, error)
	ListAllReports() ([]models.Report, error)
	UpdateReportStatus(id uuid.UUID, status models.ReportStatus) (*models.Report, error)
	// AssignReport sets assigned_to, assigned_at and forces status to
	// in_progress whatever the prior status was.
	AssignReport(id uuid.UUID, employeeID uuid.UUID) (*models.Report, error)

	// Feedback
	CreateFeedback(feedback *models.ReportFeedback) error

	// Refresh tokens
	CreateRefreshToken(token *models.RefreshToken) error
	GetActiveRefreshToken(tokenHash string) (*models.RefreshToken, error)
	RevokeRefreshToken(tokenHash string) error
}
