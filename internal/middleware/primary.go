package middleware

import (
	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/gofiber/fiber/v2"
)

// PrimaryRequired lets only PRIMARY callers through. It must run after
// JWTProtected. The role comes from the token since it never changes after
// the account is created.
func PrimaryRequired(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := principal.FromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !id.IsPrimary() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: message,
			})
		}
		return c.Next()
	}
}
