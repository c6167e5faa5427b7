package services

import (
	"github.com/google/uuid"

	"github.com/swachhjanta/backend/internal/dto"
	"github.com/swachhjanta/backend/internal/models"
	"github.com/swachhjanta/backend/internal/store"
)

// Placeholder figures for metrics that will eventually come from the
// feedback table. Kept as constants on purpose; wiring them to stored
// feedback would change observable behavior.
const (
	PlaceholderFlaggedReports   = 0
	PlaceholderAverageRating    = 4.2
	PlaceholderSatisfactionRate = 85.5
)

// StatsService computes report aggregates by loading the relevant report set
// and counting in memory. No incremental counters, no caching.
type StatsService struct {
	store store.Store
}

func NewStatsService(st store.Store) *StatsService {
	return &StatsService{store: st}
}

// StatsForUser counts a user's reports by status. Rejected reports count
// toward the total but have no bucket of their own.
func (s *StatsService) StatsForUser(userID uuid.UUID) (*dto.UserStatsResponse, error) {
	reports, err := s.store.ListReportsByUser(userID)
	if err != nil {
		return nil, err
	}
	stats := &dto.UserStatsResponse{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

// SystemStats is StatsForUser over the entire report set, with the same
// rejected omission.
func (s *StatsService) SystemStats() (*dto.SystemStatsResponse, error) {
	reports, err := s.store.ListAllReports()
	if err != nil {
		return nil, err
	}
	stats := &dto.SystemStatsResponse{TotalReports: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case models.StatusPending:
			stats.PendingReports++
		case models.StatusInProgress:
			stats.InProgressReports++
		case models.StatusResolved:
			stats.ResolvedReports++
		}
	}
	return stats, nil
}

// StatsByCategory counts all reports per category regardless of status.
func (s *StatsService) StatsByCategory() (*dto.CategoryStatsResponse, error) {
	reports, err := s.store.ListAllReports()
	if err != nil {
		return nil, err
	}
	stats := &dto.CategoryStatsResponse{}
	for _, r := range reports {
		switch r.Category {
		case models.CategoryDrainage:
			stats.Drainage++
		case models.CategoryPothole:
			stats.Pothole++
		case models.CategoryWire:
			stats.Wire++
		case models.CategoryGarbage:
			stats.Garbage++
		case models.CategoryStreetLight:
			stats.StreetLight++
		}
	}
	return stats, nil
}

// LocationDensity groups reports by exact (latitude, longitude) equality.
// Nearby-but-distinct coordinates are never merged; there is no proximity
// clustering. Entries appear in first-seen order over the newest-first scan.
func (s *StatsService) LocationDensity() ([]dto.LocationDensityEntry, error) {
	reports, err := s.store.ListAllReports()
	if err != nil {
		return nil, err
	}
	type coord struct{ lat, lng float64 }
	index := make(map[coord]int)
	entries := make([]dto.LocationDensityEntry, 0)
	for _, r := range reports {
		key := coord{r.Latitude, r.Longitude}
		if i, ok := index[key]; ok {
			entries[i].Count++
			continue
		}
		index[key] = len(entries)
		entries = append(entries, dto.LocationDensityEntry{
			Lat:   r.Latitude,
			Lng:   r.Longitude,
			Count: 1,
		})
	}
	return entries, nil
}

// EmployeePerformance derives active/resolved counts from the employee's
// assigned reports; the remaining figures are the placeholder constants.
func (s *StatsService) EmployeePerformance(employeeID uuid.UUID) (*dto.EmployeePerformanceResponse, error) {
	reports, err := s.store.ListReportsByAssignee(employeeID)
	if err != nil {
		return nil, err
	}
	perf := &dto.EmployeePerformanceResponse{
		FlaggedReports:   PlaceholderFlaggedReports,
		AverageRating:    PlaceholderAverageRating,
		SatisfactionRate: PlaceholderSatisfactionRate,
	}
	for _, r := range reports {
		switch r.Status {
		case models.StatusInProgress:
			perf.ActiveReports++
		case models.StatusResolved:
			perf.ResolvedReports++
		}
	}
	return perf, nil
}
