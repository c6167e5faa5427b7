package models

import (
	"time"

	"github.com/google/uuid"
)

// IssueCategory is the kind of civic problem a report describes.
type IssueCategory string

const (
	CategoryDrainage    IssueCategory = "drainage"
	CategoryPothole     IssueCategory = "pothole"
	CategoryWire        IssueCategory = "wire"
	CategoryGarbage     IssueCategory = "garbage"
	CategoryStreetLight IssueCategory = "street_light"
)

// Categories lists every issue category in a stable order.
var Categories = []IssueCategory{
	CategoryDrainage,
	CategoryPothole,
	CategoryWire,
	CategoryGarbage,
	CategoryStreetLight,
}

func ValidCategory(c IssueCategory) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ReportStatus is the lifecycle state of a report. Transitions are
// unguarded: any status may move to any other.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusRejected   ReportStatus = "rejected"
)

func ValidStatus(s ReportStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Report is a geotagged civic-issue report. Rows are never deleted;
// assigned_to and assigned_at are either both set or both unset.
type Report struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PublicID   string     `gorm:"size:20;not null;uniqueIndex" json:"report_id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	AssignedTo *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to,omitempty"`

	Category    IssueCategory `gorm:"size:20;not null" json:"category"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	PhotoURL    string        `gorm:"size:512" json:"photo_url,omitempty"`
	Latitude    float64       `gorm:"not null" json:"latitude"`
	Longitude   float64       `gorm:"not null" json:"longitude"`
	Address     string        `gorm:"type:text" json:"address,omitempty"`

	Status              ReportStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Priority            string       `gorm:"size:20;default:'medium'" json:"priority"`
	EstimatedCompletion *time.Time   `json:"estimated_completion,omitempty"`
	AssignedAt          *time.Time   `json:"assigned_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User     User  `gorm:"foreignKey:UserID" json:"-"`
	Assignee *User `gorm:"foreignKey:AssignedTo" json:"-"`
}
