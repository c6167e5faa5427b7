package models

import (
	"time"

	"github.com/google/uuid"
)

// UserType discriminates citizens from authority staff.
type UserType string

const (
	UserTypeCitizen   UserType = "citizen"
	UserTypeAuthority UserType = "authority"
)

// EmployeeRole is the role of an authority user within the organization.
type EmployeeRole string

const (
	RoleAdmin       EmployeeRole = "admin"
	RoleSupervisor  EmployeeRole = "supervisor"
	RoleFieldWorker EmployeeRole = "field_worker"
)

func ValidEmployeeRole(r EmployeeRole) bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleFieldWorker:
		return true
	}
	return false
}

// AuthorityProfile carries the fields that are only meaningful for
// authority users: employee identity, organizational role, the issue
// category the employee's department handles, and the soft-delete flag.
type AuthorityProfile struct {
	EmployeeID *string       `gorm:"column:employee_id;size:50;uniqueIndex" json:"employee_id,omitempty"`
	Role       EmployeeRole  `gorm:"column:role;size:20" json:"role,omitempty"`
	Department IssueCategory `gorm:"column:department;size:20" json:"department,omitempty"`
	IsActive   *bool         `gorm:"column:is_active;default:true" json:"is_active,omitempty"`
}

// User is a citizen or an authority employee. Authority-only fields live in
// the embedded AuthorityProfile and are cleared for citizens on upsert.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email           *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Password        string    `gorm:"size:255" json:"-"`
	FirstName       string    `gorm:"size:100" json:"first_name"`
	LastName        string    `gorm:"size:100" json:"last_name"`
	ProfileImageURL string    `gorm:"size:512" json:"profile_image_url,omitempty"`
	UserType        UserType  `gorm:"size:20;not null;default:'citizen'" json:"user_type"`

	Authority AuthorityProfile `gorm:"embedded" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAuthority reports whether the role discriminator is authority.
func (u *User) IsAuthority() bool {
	return u.UserType == UserTypeAuthority
}

// AuthorityFields returns the authority variant of the user, or ok=false
// for citizens. Callers must not read Authority directly on citizen rows.
func (u *User) AuthorityFields() (AuthorityProfile, bool) {
	if !u.IsAuthority() {
		return AuthorityProfile{}, false
	}
	return u.Authority, true
}

// Active reports whether an authority user has not been deactivated.
// Citizens are always active.
func (u *User) Active() bool {
	if !u.IsAuthority() {
		return true
	}
	return u.Authority.IsActive == nil || *u.Authority.IsActive
}

// Normalize enforces the variant invariant: citizens carry no authority
// fields.
func (u *User) Normalize() {
	if !u.IsAuthority() {
		u.Authority = AuthorityProfile{}
	}
}
