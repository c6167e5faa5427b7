package models

import (
	"time"

	"github.com/google/uuid"
)

// EmployeePerformance is a per-employee monthly snapshot. The table is
// migrated for forward compatibility; live performance figures are computed
// from assigned reports instead (see services.StatsService).
type EmployeePerformance struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID          uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_performance_period" json:"employee_id"`
	Month               int       `gorm:"not null" json:"month"`
	Year                int       `gorm:"not null;index:idx_employee_performance_period" json:"year"`
	TotalAssigned       int       `gorm:"default:0" json:"total_assigned"`
	TotalResolved       int       `gorm:"default:0" json:"total_resolved"`
	TotalPending        int       `gorm:"default:0" json:"total_pending"`
	AverageRating       float64   `json:"average_rating"`
	SatisfactionRate    float64   `json:"satisfaction_rate"`
	AverageResponseTime float64   `json:"average_response_time"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Employee User `gorm:"foreignKey:EmployeeID" json:"-"`
}
