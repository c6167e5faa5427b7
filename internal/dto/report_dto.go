package dto

import "github.com/google/uuid"

type AssignReportRequest struct {
	EmployeeID uuid.UUID `json:"employee_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type SubmitFeedbackRequest struct {
	Rating            int    `json:"rating"`
	SatisfactionLevel string `json:"satisfaction_level,omitempty"`
	Comment           string `json:"comment,omitempty"`
	ServiceQuality    int    `json:"service_quality,omitempty"`
	ResponseTime      int    `json:"response_time,omitempty"`
}

type UserStatsResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}

type SystemStatsResponse struct {
	TotalReports      int `json:"totalReports"`
	PendingReports    int `json:"pendingReports"`
	InProgressReports int `json:"inProgressReports"`
	ResolvedReports   int `json:"resolvedReports"`
}

type CategoryStatsResponse struct {
	Drainage    int `json:"drainage"`
	Pothole     int `json:"pothole"`
	Wire        int `json:"wire"`
	Garbage     int `json:"garbage"`
	StreetLight int `json:"street_light"`
}

type LocationDensityEntry struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Count int     `json:"count"`
}

type EmployeePerformanceResponse struct {
	ActiveReports    int     `json:"activeReports"`
	ResolvedReports  int     `json:"resolvedReports"`
	FlaggedReports   int     `json:"flaggedReports"`
	AverageRating    float64 `json:"averageRating"`
	SatisfactionRate float64 `json:"satisfactionRate"`
}
