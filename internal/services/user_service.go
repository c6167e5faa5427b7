package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/swachhjanta/backend/internal/models"
	"github.com/swachhjanta/backend/internal/store"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("authority access required")
)

// UserService covers user lookup, employee management and the authority
// role check.
type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// RequireAuthority succeeds only when the caller's role discriminator is
// authority. It is the single capability check gating authority operations;
// callers apply it at the boundary, the services themselves do not.
func (s *UserService) RequireAuthority(callerID uuid.UUID) error {
	user, err := s.Get(callerID)
	if err != nil {
		return err
	}
	if !user.IsAuthority() {
		return ErrForbidden
	}
	return nil
}

type UpsertUserInput struct {
	ID              uuid.UUID
	Email           *string
	FirstName       string
	LastName        string
	ProfileImageURL string
	UserType        models.UserType
	EmployeeID      *string
	Role            models.EmployeeRole
	Department      models.IssueCategory
	IsActive        *bool
}

// Upsert inserts or replaces a user keyed by id. Authority-only fields are
// validated for authority users and cleared for citizens.
func (s *UserService) Upsert(input UpsertUserInput) (*models.User, error) {
	if input.UserType == "" {
		input.UserType = models.UserTypeCitizen
	}
	if input.UserType != models.UserTypeCitizen && input.UserType != models.UserTypeAuthority {
		return nil, fmt.Errorf("%w: invalid user type %q", ErrValidation, input.UserType)
	}
	if input.UserType == models.UserTypeAuthority {
		if input.Role != "" && !models.ValidEmployeeRole(input.Role) {
			return nil, fmt.Errorf("%w: invalid employee role %q", ErrValidation, input.Role)
		}
		if input.Department != "" && !models.ValidCategory(input.Department) {
			return nil, fmt.Errorf("%w: invalid department %q", ErrValidation, input.Department)
		}
	}

	user := &models.User{
		ID:              input.ID,
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		ProfileImageURL: input.ProfileImageURL,
		UserType:        input.UserType,
		Authority: models.AuthorityProfile{
			EmployeeID: input.EmployeeID,
			Role:       input.Role,
			Department: input.Department,
			IsActive:   input.IsActive,
		},
	}
	return s.store.UpsertUser(user)
}

// ListEmployees returns every authority user, active or not.
func (s *UserService) ListEmployees() ([]models.User, error) {
	return s.store.ListAuthorityUsers()
}

// Deactivate soft-deletes an authority user by clearing the active flag.
// The row is never removed.
func (s *UserService) Deactivate(id uuid.UUID) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !user.IsAuthority() {
		return nil, fmt.Errorf("%w: user %s is not an authority user", ErrValidation, id)
	}
	inactive := false
	user.Authority.IsActive = &inactive
	return s.store.UpsertUser(user)
}
