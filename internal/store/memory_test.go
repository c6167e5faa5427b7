package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swachhjanta/backend/internal/models"
)

func seedMemReport(t *testing.T, st *MemoryStore, userID uuid.UUID) *models.Report {
	t.Helper()
	report := &models.Report{
		ID:        uuid.New(),
		PublicID:  "SW2026" + uuid.New().String()[:6],
		UserID:    userID,
		Category:  models.CategoryPothole,
		Latitude:  30.7,
		Longitude: 76.7,
		Status:    models.StatusPending,
	}
	require.NoError(t, st.CreateReport(report))
	return report
}

func TestMemoryStore_ListAllReports_NewestFirst(t *testing.T) {
	st := NewMemoryStore()
	userID := uuid.New()

	first := seedMemReport(t, st, userID)
	second := seedMemReport(t, st, userID)
	third := seedMemReport(t, st, userID)

	reports, err := st.ListAllReports()
	require.NoError(t, err)
	require.Len(t, reports, 3)

	// Insertion order breaks ties between equal timestamps
	assert.Equal(t, third.ID, reports[0].ID)
	assert.Equal(t, second.ID, reports[1].ID)
	assert.Equal(t, first.ID, reports[2].ID)
}

func TestMemoryStore_UpsertUser_PreservesCreatedAt(t *testing.T) {
	st := NewMemoryStore()
	id := uuid.New()

	created, err := st.UpsertUser(&models.User{ID: id, UserType: models.UserTypeCitizen})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	updated, err := st.UpsertUser(&models.User{ID: id, UserType: models.UserTypeCitizen, FirstName: "Asha"})
	require.NoError(t, err)

	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Asha", updated.FirstName)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestMemoryStore_UpsertUser_NormalizesCitizens(t *testing.T) {
	st := NewMemoryStore()
	employeeID := "EMP-001"

	user, err := st.UpsertUser(&models.User{
		ID:       uuid.New(),
		UserType: models.UserTypeCitizen,
		Authority: models.AuthorityProfile{
			EmployeeID: &employeeID,
			Role:       models.RoleAdmin,
		},
	})
	require.NoError(t, err)
	assert.Nil(t, user.Authority.EmployeeID)
	assert.Empty(t, user.Authority.Role)
}

func TestMemoryStore_UpdateReportStatus_NotFound(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.UpdateReportStatus(uuid.New(), models.StatusResolved)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.AssignReport(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RefreshTokenLifecycle(t *testing.T) {
	st := NewMemoryStore()
	hash := "deadbeef"

	require.NoError(t, st.CreateRefreshToken(&models.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	token, err := st.GetActiveRefreshToken(hash)
	require.NoError(t, err)
	assert.Equal(t, hash, token.TokenHash)

	require.NoError(t, st.RevokeRefreshToken(hash))
	_, err = st.GetActiveRefreshToken(hash)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReportByPublicID(t *testing.T) {
	st := NewMemoryStore()
	report := seedMemReport(t, st, uuid.New())

	found, err := st.GetReportByPublicID(report.PublicID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, found.ID)

	_, err = st.GetReportByPublicID("SW2026000000")
	assert.ErrorIs(t, err, ErrNotFound)
}
