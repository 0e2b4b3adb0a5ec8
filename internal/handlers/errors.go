package handlers

import (
	"errors"
	"log/slog"

	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// clientErrors maps service errors to the message shown to the client. All of
// them are answered with 400.
var clientErrors = []struct {
	err     error
	message string
}{
	{services.ErrInvalidRole, "Error: Invalid role specified!"},
	{services.ErrInvalidCredentials, "Error: Invalid username or password!"},
	{services.ErrAccountDisabled, "Error: Authentication failed!"},
	{services.ErrRoleMismatch, "Error: Invalid role for this account! Please select the correct role."},
	{services.ErrNoLinkedOwners, "Error: No family members have added you as a relative yet."},
	{services.ErrUserNotFound, "Error: User not found"},
	{services.ErrReportNotFound, "Error: Report not found"},
	{services.ErrAccessDenied, "Error: Access denied to this report"},
	{services.ErrInvalidDisease, "Error: Invalid disease type"},
	{services.ErrInvalidRange, "Error: 'from' must not be after 'to'"},
	{services.ErrPrimaryRequired, "Error: Only main users can perform this action."},
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

// writeError answers known service errors with 400 and anything else with a
// logged 500.
func writeError(c *fiber.Ctx, action string, err error) error {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			return badRequest(c, ce.message)
		}
	}

	slog.Error("request failed",
		"action", action,
		"request_id", requestID(c),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
