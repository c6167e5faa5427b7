package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/swachhjanta/backend/internal/dto"
	"github.com/swachhjanta/backend/internal/models"
	"github.com/swachhjanta/backend/internal/services"
)

// AuthorityHandler serves the staff-side endpoints: triage, assignment,
// aggregates and employee management. Role gating happens in middleware,
// before any of these run.
type AuthorityHandler struct {
	reportService *services.ReportService
	statsService  *services.StatsService
	userService   *services.UserService
}

func NewAuthorityHandler(reportService *services.ReportService, statsService *services.StatsService, userService *services.UserService) *AuthorityHandler {
	return &AuthorityHandler{
		reportService: reportService,
		statsService:  statsService,
		userService:   userService,
	}
}

func (h *AuthorityHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.reportService.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}
	return c.JSON(reports)
}

func (h *AuthorityHandler) SystemStats(c *fiber.Ctx) error {
	stats, err := h.statsService.SystemStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}
	return c.JSON(stats)
}

func (h *AuthorityHandler) CategoryStats(c *fiber.Ctx) error {
	stats, err := h.statsService.StatsByCategory()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}
	return c.JSON(stats)
}

func (h *AuthorityHandler) Locations(c *fiber.Ctx) error {
	entries, err := h.statsService.LocationDensity()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch locations",
		})
	}
	return c.JSON(entries)
}

// UpdateStatus moves a report to the requested status.
func (h *AuthorityHandler) UpdateStatus(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.UpdateStatus(reportID, models.ReportStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		slog.Error("failed to update report status", "error", err, "report_id", reportID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update report",
		})
	}
	return c.JSON(report)
}

// Assign hands a report to an employee; the report moves to in_progress.
func (h *AuthorityHandler) Assign(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.AssignReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.EmployeeID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "employee_id is required",
		})
	}

	report, err := h.reportService.Assign(reportID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		slog.Error("failed to assign report", "error", err, "report_id", reportID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to assign report",
		})
	}
	return c.JSON(report)
}

func (h *AuthorityHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.userService.ListEmployees()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch employees",
		})
	}
	responses := make([]dto.UserResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, dto.NewUserResponse(&employees[i]))
	}
	return c.JSON(responses)
}

// UpsertEmployee creates or replaces an employee record. A missing id means
// create with a fresh one.
func (h *AuthorityHandler) UpsertEmployee(c *fiber.Ctx) error {
	var req dto.UpsertEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	input := services.UpsertUserInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
		UserType:        models.UserTypeAuthority,
		Role:            models.EmployeeRole(req.Role),
		Department:      models.IssueCategory(req.Department),
		IsActive:        req.IsActive,
	}
	if req.UserType != "" {
		input.UserType = models.UserType(req.UserType)
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid user ID",
			})
		}
		input.ID = id
	} else {
		input.ID = uuid.New()
	}
	if req.Email != "" {
		input.Email = &req.Email
	}
	if req.EmployeeID != "" {
		input.EmployeeID = &req.EmployeeID
	}

	user, err := h.userService.Upsert(input)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("failed to upsert employee", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save employee",
		})
	}
	return c.JSON(dto.NewUserResponse(user))
}

// DeactivateEmployee clears the active flag; the record stays.
func (h *AuthorityHandler) DeactivateEmployee(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	user, err := h.userService.Deactivate(employeeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to deactivate employee",
		})
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *AuthorityHandler) EmployeePerformance(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	perf, err := h.statsService.EmployeePerformance(employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch performance",
		})
	}
	return c.JSON(perf)
}
