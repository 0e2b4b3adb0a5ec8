package handlers

import (
	"errors"
	"fmt"

	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/diagnoai/diagno-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.authService.Signup(c.UserContext(), &req); err != nil {
		return h.accountError(c, "signup", req.Username, req.Email, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User registered successfully!"})
}

func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.authService.Signin(c.UserContext(), &req)
	if err != nil {
		return writeError(c, "signin", err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) AddRelative(c *fiber.Ctx) error {
	caller, err := principal.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Error: User must be authenticated to add relatives",
		})
	}

	var req dto.AddRelativeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.authService.AddRelative(c.UserContext(), caller, &req); err != nil {
		return h.accountError(c, "add_relative", req.Username, req.Email, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Relative added successfully!"})
}

func (h *AuthHandler) accountError(c *fiber.Ctx, action, username, email string, err error) error {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		return badRequest(c, fmt.Sprintf("Error: Username '%s' is already taken!", username))
	case errors.Is(err, services.ErrEmailTaken):
		return badRequest(c, fmt.Sprintf("Error: Email '%s' is already in use!", email))
	case errors.Is(err, services.ErrPrimaryRequired):
		return badRequest(c, "Error: Only main users can add relatives.")
	}
	return writeError(c, action, err)
}
