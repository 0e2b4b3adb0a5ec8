package handlers

import (
	"time"

	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	driver string
	ping   func() error
}

// NewHealthHandler reports the database state through ping. A nil ping means
// there is no database to check.
func NewHealthHandler(driver string, ping func() error) *HealthHandler {
	return &HealthHandler{driver: driver, ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if h.ping == nil {
		dbStatus = "n/a"
	} else if err := h.ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Driver:    h.driver,
	})
}
