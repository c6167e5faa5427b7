package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportFeedback is a citizen's rating of a resolved report. Stored only;
// performance figures are not derived from it yet.
type ReportFeedback struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportID          uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Rating            int       `gorm:"not null" json:"rating"`
	SatisfactionLevel string    `gorm:"size:20" json:"satisfaction_level,omitempty"`
	Comment           string    `gorm:"type:text" json:"comment,omitempty"`
	ServiceQuality    int       `json:"service_quality,omitempty"`
	ResponseTime      int       `json:"response_time,omitempty"`
	CreatedAt         time.Time `json:"created_at"`

	Report Report `gorm:"foreignKey:ReportID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}
