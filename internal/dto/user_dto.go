package dto

import (
	"github.com/google/uuid"

	"github.com/swachhjanta/backend/internal/models"
)

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email,omitempty"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	UserType        string    `json:"user_type"`

	// Authority-only fields; zero-valued for citizens.
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

func NewUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		UserType:        string(user.UserType),
	}
	if user.Email != nil {
		resp.Email = *user.Email
	}
	if authority, ok := user.AuthorityFields(); ok {
		if authority.EmployeeID != nil {
			resp.EmployeeID = *authority.EmployeeID
		}
		resp.Role = string(authority.Role)
		resp.Department = string(authority.Department)
		resp.IsActive = authority.IsActive
	}
	return resp
}

type UpsertEmployeeRequest struct {
	ID              string `json:"id,omitempty"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	UserType        string `json:"user_type"`
	EmployeeID      string `json:"employee_id,omitempty"`
	Role            string `json:"role,omitempty"`
	Department      string `json:"department,omitempty"`
	IsActive        *bool  `json:"is_active,omitempty"`
}
