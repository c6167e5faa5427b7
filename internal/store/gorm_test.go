package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/swachhjanta/backend/internal/models"
)

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewGormStore(gdb), mock
}

func TestGormStore_GetUser_NotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_type"}))

	_, err := st.GetUser(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_GetUserByEmail(t *testing.T) {
	st, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "user_type"}).
			AddRow(id.String(), "asha@example.com", "citizen"))

	user, err := st.GetUserByEmail("asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.UserTypeCitizen, user.UserType)
}

func TestGormStore_GetReportByPublicID(t *testing.T) {
	st, mock := newMockStore(t)
	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id", "user_id", "category", "status"}).
			AddRow(id.String(), "SW2026123456", userID.String(), "pothole", "pending"))

	report, err := st.GetReportByPublicID("SW2026123456")
	require.NoError(t, err)
	assert.Equal(t, id, report.ID)
	assert.Equal(t, models.StatusPending, report.Status)
}

func TestGormStore_UpdateReportStatus_NoRows(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "reports" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := st.UpdateReportStatus(uuid.New(), models.StatusResolved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_AssignReport_NoRows(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "reports" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := st.AssignReport(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_RevokeRefreshToken(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "refresh_tokens" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, st.RevokeRefreshToken("deadbeef"))
}
