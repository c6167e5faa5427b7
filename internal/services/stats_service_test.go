package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swachhjanta/backend/internal/models"
	"github.com/swachhjanta/backend/internal/store"
)

func seedReport(t *testing.T, svc *ReportService, userID uuid.UUID, category models.IssueCategory, lat, lng float64) *models.Report {
	t.Helper()
	report, err := svc.Create(CreateReportInput{
		UserID:    userID,
		Category:  category,
		Latitude:  floatPtr(lat),
		Longitude: floatPtr(lng),
	})
	require.NoError(t, err)
	return report
}

func TestStatsForUser_RejectedCountsTowardTotalOnly(t *testing.T) {
	st := store.NewMemoryStore()
	reports := NewReportService(st)
	stats := NewStatsService(st)
	userID := uuid.New()

	r1 := seedReport(t, reports, userID, models.CategoryPothole, 30.7, 76.7)
	r2 := seedReport(t, reports, userID, models.CategoryGarbage, 30.7, 76.7)
	seedReport(t, reports, userID, models.CategoryDrainage, 30.7, 76.7)
	r4 := seedReport(t, reports, userID, models.CategoryWire, 30.7, 76.7)

	_, err := reports.UpdateStatus(r1.ID, models.StatusResolved)
	require.NoError(t, err)
	_, err = reports.UpdateStatus(r2.ID, models.StatusInProgress)
	require.NoError(t, err)
	_, err = reports.UpdateStatus(r4.ID, models.StatusRejected)
	require.NoError(t, err)

	got, err := stats.StatsForUser(userID)
	require.NoError(t, err)

	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 1, got.Pending)
	assert.Equal(t, 1, got.InProgress)
	assert.Equal(t, 1, got.Resolved)
	// The rejected report appears in the total but in no bucket
	assert.Equal(t, 3, got.Pending+got.InProgress+got.Resolved)
}

func TestSystemStats(t *testing.T) {
	st := store.NewMemoryStore()
	reports := NewReportService(st)
	stats := NewStatsService(st)

	r1 := seedReport(t, reports, uuid.New(), models.CategoryPothole, 30.7, 76.7)
	seedReport(t, reports, uuid.New(), models.CategoryGarbage, 30.8, 76.8)
	_, err := reports.UpdateStatus(r1.ID, models.StatusResolved)
	require.NoError(t, err)

	got, err := stats.SystemStats()
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalReports)
	assert.Equal(t, 1, got.PendingReports)
	assert.Equal(t, 0, got.InProgressReports)
	assert.Equal(t, 1, got.ResolvedReports)
}

func TestStatsByCategory(t *testing.T) {
	st := store.NewMemoryStore()
	reports := NewReportService(st)
	stats := NewStatsService(st)

	seedReport(t, reports, uuid.New(), models.CategoryPothole, 30.7, 76.7)
	seedReport(t, reports, uuid.New(), models.CategoryPothole, 30.7, 76.7)
	seedReport(t, reports, uuid.New(), models.CategoryPothole, 30.7, 76.7)
	seedReport(t, reports, uuid.New(), models.CategoryGarbage, 30.7, 76.7)

	got, err := stats.StatsByCategory()
	require.NoError(t, err)
	assert.Equal(t, 3, got.Pothole)
	assert.Equal(t, 1, got.Garbage)
	assert.Equal(t, 0, got.Drainage)
	assert.Equal(t, 0, got.Wire)
	assert.Equal(t, 0, got.StreetLight)
}

func TestLocationDensity_ExactCoordinateGrouping(t *testing.T) {
	st := store.NewMemoryStore()
	reports := NewReportService(st)
	stats := NewStatsService(st)

	seedReport(t, reports, uuid.New(), models.CategoryPothole, 30.7333, 76.7794)
	seedReport(t, reports, uuid.New(), models.CategoryGarbage, 30.7333, 76.7794)
	// Nearby but not identical; must stay a separate entry
	seedReport(t, reports, uuid.New(), models.CategoryDrainage, 30.7334, 76.7794)

	entries, err := stats.LocationDensity()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	counts := map[float64]int{}
	for _, e := range entries {
		counts[e.Lat] = e.Count
	}
	assert.Equal(t, 2, counts[30.7333])
	assert.Equal(t, 1, counts[30.7334])
}

func TestEmployeePerformance(t *testing.T) {
	st := store.NewMemoryStore()
	reports := NewReportService(st)
	stats := NewStatsService(st)
	employeeID := uuid.New()

	r1 := seedReport(t, reports, uuid.New(), models.CategoryPothole, 30.7, 76.7)
	r2 := seedReport(t, reports, uuid.New(), models.CategoryGarbage, 30.8, 76.8)
	seedReport(t, reports, uuid.New(), models.CategoryWire, 30.9, 76.9)

	_, err := reports.Assign(r1.ID, employeeID)
	require.NoError(t, err)
	_, err = reports.Assign(r2.ID, employeeID)
	require.NoError(t, err)

	perf, err := stats.EmployeePerformance(employeeID)
	require.NoError(t, err)
	assert.Equal(t, 2, perf.ActiveReports)
	assert.Equal(t, 0, perf.ResolvedReports)

	_, err = reports.UpdateStatus(r2.ID, models.StatusResolved)
	require.NoError(t, err)

	perf, err = stats.EmployeePerformance(employeeID)
	require.NoError(t, err)
	assert.Equal(t, 1, perf.ActiveReports)
	assert.Equal(t, 1, perf.ResolvedReports)

	assert.Equal(t, PlaceholderFlaggedReports, perf.FlaggedReports)
	assert.InDelta(t, PlaceholderAverageRating, perf.AverageRating, 0.001)
	assert.InDelta(t, PlaceholderSatisfactionRate, perf.SatisfactionRate, 0.001)
}

func TestEmployeePerformance_NoAssignments(t *testing.T) {
	st := store.NewMemoryStore()
	stats := NewStatsService(st)

	perf, err := stats.EmployeePerformance(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, perf.ActiveReports)
	assert.Equal(t, 0, perf.ResolvedReports)
}
