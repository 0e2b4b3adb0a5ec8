package handlers

import (
	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/diagnoai/diagno-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService     *services.UserService
	relativeService *services.RelativeService
}

func NewUserHandler(userService *services.UserService, relativeService *services.RelativeService) *UserHandler {
	return &UserHandler{userService: userService, relativeService: relativeService}
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	user, err := h.userService.Profile(c.UserContext(), caller.UserID)
	if err != nil {
		return writeError(c, "profile", err)
	}
	return c.JSON(dto.NewProfileResponse(user))
}

func (h *UserHandler) Relatives(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	relatives, err := h.relativeService.Relatives(c.UserContext(), caller.UserID)
	if err != nil {
		return writeError(c, "list_relatives", err)
	}
	return c.JSON(dto.NewUserResponses(relatives))
}

// Owners lists the primary users who linked the caller as a relative.
func (h *UserHandler) Owners(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	owners, err := h.relativeService.Owners(c.UserContext(), caller.UserID)
	if err != nil {
		return writeError(c, "list_owners", err)
	}
	return c.JSON(dto.NewUserResponses(owners))
}

// RemoveRelative unlinks :id from the caller. Unlinking a user that is not
// linked succeeds.
func (h *UserHandler) RemoveRelative(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	relativeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, "remove_relative", services.ErrUserNotFound)
	}

	if err := h.relativeService.RemoveEdge(c.UserContext(), caller.UserID, relativeID); err != nil {
		return writeError(c, "remove_relative", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Relative removed successfully!"})
}

func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := h.userService.Search(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, "search_users", err)
	}
	return c.JSON(dto.NewUserResponses(users))
}
