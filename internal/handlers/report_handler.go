package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/swachhjanta/backend/internal/config"
	"github.com/swachhjanta/backend/internal/dto"
	"github.com/swachhjanta/backend/internal/identity"
	"github.com/swachhjanta/backend/internal/models"
	"github.com/swachhjanta/backend/internal/services"
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ReportHandler serves the citizen-facing report endpoints.
type ReportHandler struct {
	reportService *services.ReportService
	statsService  *services.StatsService
	cfg           *config.Config
}

func NewReportHandler(reportService *services.ReportService, statsService *services.StatsService, cfg *config.Config) *ReportHandler {
	return &ReportHandler{reportService: reportService, statsService: statsService, cfg: cfg}
}

// Create accepts a multipart form: category, latitude and longitude are
// required, description, address and the photo file are optional.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	input := services.CreateReportInput{
		UserID:      userID,
		Category:    models.IssueCategory(c.FormValue("category")),
		Description: c.FormValue("description"),
		Address:     c.FormValue("address"),
	}
	if v := c.FormValue("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid latitude",
			})
		}
		input.Latitude = &lat
	}
	if v := c.FormValue("longitude"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid longitude",
			})
		}
		input.Longitude = &lng
	}

	if file, err := c.FormFile("photo"); err == nil && file != nil {
		photoURL, err := h.savePhoto(c, file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		input.PhotoURL = photoURL
	}

	report, err := h.reportService.Create(input)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("failed to create report", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) savePhoto(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if file.Size > int64(h.cfg.MaxUploadSize) {
		return "", errors.New("photo exceeds the 10MB size limit")
	}
	if !allowedPhotoTypes[file.Header.Get("Content-Type")] {
		return "", errors.New("invalid file type, only images are allowed")
	}

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
	if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, name)); err != nil {
		return "", errors.New("failed to store photo")
	}
	return "/uploads/" + name, nil
}

// ListMine returns the caller's reports, newest first.
func (h *ReportHandler) ListMine(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reports, err := h.reportService.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}
	return c.JSON(reports)
}

// MyStats returns the caller's report counts by status.
func (h *ReportHandler) MyStats(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	stats, err := h.statsService.StatsForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}
	return c.JSON(stats)
}

// Get resolves a report by internal id, or by its public SW identifier.
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	idParam := c.Params("id")

	var report *models.Report
	var err error
	if reportID, parseErr := uuid.Parse(idParam); parseErr == nil {
		report, err = h.reportService.GetByID(reportID)
	} else if strings.HasPrefix(idParam, "SW") {
		report, err = h.reportService.GetByPublicID(idParam)
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch report",
		})
	}
	return c.JSON(report)
}

// SubmitFeedback stores a rating for a report.
func (h *ReportHandler) SubmitFeedback(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	feedback, err := h.reportService.SubmitFeedback(services.SubmitFeedbackInput{
		ReportID:          reportID,
		UserID:            userID,
		Rating:            req.Rating,
		SatisfactionLevel: req.SatisfactionLevel,
		Comment:           req.Comment,
		ServiceQuality:    req.ServiceQuality,
		ResponseTime:      req.ResponseTime,
	})
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
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit feedback",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}
