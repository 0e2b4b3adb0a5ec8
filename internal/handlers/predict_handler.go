package handlers

import (
	"encoding/json"
	"errors"

	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/diagnoai/diagno-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PredictHandler struct {
	predictionService *services.PredictionService
}

func NewPredictHandler(predictionService *services.PredictionService) *PredictHandler {
	return &PredictHandler{predictionService: predictionService}
}

// Predict forwards the JSON feature map for :disease. Authentication is
// optional; with a token the outcome is also stored as a report.
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	disease, err := models.ParseDisease(c.Params("disease"))
	if err != nil {
		return writeError(c, "predict", services.ErrInvalidDisease)
	}

	var features map[string]any
	if err := json.Unmarshal(c.Body(), &features); err != nil || features == nil {
		return badRequest(c, "Invalid request body")
	}
	payload := append([]byte(nil), c.Body()...)

	var caller *principal.Identity
	if id, ok := principal.Optional(c); ok {
		caller = &id
	}

	result, err := h.predictionService.Predict(c.UserContext(), disease, payload, caller)
	if err != nil {
		if errors.Is(err, services.ErrUpstreamUnavailable) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.UpstreamErrorResponse{
				Error:      "Failed to call prediction API. Error: " + err.Error(),
				Suggestion: services.UpstreamSuggestion,
			})
		}
		return writeError(c, "predict", err)
	}
	return c.JSON(result)
}
