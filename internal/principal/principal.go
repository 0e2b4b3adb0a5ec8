// Package principal carries the authenticated caller through a request. The
// identity is read from the verified JWT and passed explicitly into service
// calls.
package principal

import (
	"errors"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no authenticated identity")

type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     models.Role
}

func (id Identity) IsPrimary() bool {
	return id.Role == models.RolePrimary
}

// FromCtx extracts the identity from JWT claims placed in Fiber locals by the
// jwt middleware.
func FromCtx(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, ErrNoIdentity
	}
	return FromToken(token)
}

// Optional reports whether the request carried a valid token.
func Optional(c *fiber.Ctx) (Identity, bool) {
	id, err := FromCtx(c)
	return id, err == nil
}

func FromToken(token *jwt.Token) (Identity, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, err
	}

	rawRole, _ := claims["role"].(string)
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return Identity{}, err
	}

	username, _ := claims["username"].(string)
	return Identity{UserID: userID, Username: username, Role: role}, nil
}
