package handlers

import (
	"time"

	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/diagnoai/diagno-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Accessible lists the caller's reports together with those of linked users.
// It backs both /my-reports and /accessible-reports.
func (h *ReportHandler) Accessible(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	reports := h.reportService.Accessible(c.UserContext(), caller)
	return c.JSON(dto.NewReportResponses(reports))
}

func (h *ReportHandler) ByDisease(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	disease, err := models.ParseDisease(c.Params("type"))
	if err != nil {
		return writeError(c, "reports_by_disease", services.ErrInvalidDisease)
	}

	reports, err := h.reportService.ByUserAndDisease(c.UserContext(), caller.UserID, disease)
	if err != nil {
		return writeError(c, "reports_by_disease", err)
	}
	return c.JSON(dto.NewReportResponses(reports))
}

// Range lists the caller's own reports created between from and to, both
// RFC3339 and inclusive.
func (h *ReportHandler) Range(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return badRequest(c, "Error: 'from' must be an RFC3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return badRequest(c, "Error: 'to' must be an RFC3339 timestamp")
	}

	reports, err := h.reportService.ByUserAndDateRange(c.UserContext(), caller.UserID, from, to)
	if err != nil {
		return writeError(c, "reports_by_range", err)
	}
	return c.JSON(dto.NewReportResponses(reports))
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, "get_report", services.ErrReportNotFound)
	}

	report, err := h.reportService.View(c.UserContext(), caller, reportID)
	if err != nil {
		return writeError(c, "get_report", err)
	}
	return c.JSON(dto.NewReportResponse(report))
}

// Count never fails; lookup errors count as zero.
func (h *ReportHandler) Count(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(dto.CountResponse{Count: h.reportService.AccessibleCount(c.UserContext(), caller)})
}

func (h *ReportHandler) Save(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SaveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	disease, err := models.ParseDisease(req.DiseaseType)
	if err != nil {
		return writeError(c, "save_report", services.ErrInvalidDisease)
	}

	report, err := h.reportService.SaveAs(c.UserContext(), caller, services.NewReport{
		Disease:     disease,
		Result:      *req.PredictionResult,
		Probability: req.Probability,
		InputData:   req.InputData,
		Message:     req.PredictionMessage,
	})
	if err != nil {
		return writeError(c, "save_report", err)
	}
	return c.JSON(dto.NewReportResponse(report))
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
