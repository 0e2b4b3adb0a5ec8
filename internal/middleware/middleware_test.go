package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diagnoai/diagno-backend/internal/config"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = &config.Config{JWTSecret: "test-secret"}

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestJWTProtected(t *testing.T) {
	app := fiber.New()
	app.Get("/", JWTProtected(testCfg), func(c *fiber.Ctx) error { return c.SendString("ok") })

	status, _ := do(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, signToken(t, "other-secret", "PRIMARY"))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := do(t, app, signToken(t, testCfg.JWTSecret, "PRIMARY"))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestOptionalJWT(t *testing.T) {
	app := fiber.New()
	app.Get("/", OptionalJWT(testCfg), func(c *fiber.Ctx) error {
		if _, ok := principal.Optional(c); ok {
			return c.SendString("user")
		}
		return c.SendString("anonymous")
	})

	_, body := do(t, app, "")
	assert.Equal(t, "anonymous", body)

	_, body = do(t, app, signToken(t, "other-secret", "PRIMARY"))
	assert.Equal(t, "anonymous", body)

	_, body = do(t, app, signToken(t, testCfg.JWTSecret, "PRIMARY"))
	assert.Equal(t, "user", body)
}

func TestPrimaryRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/", JWTProtected(testCfg), PrimaryRequired("primary only"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	status, _ := do(t, app, signToken(t, testCfg.JWTSecret, "PRIMARY"))
	assert.Equal(t, fiber.StatusOK, status)

	status, body := do(t, app, signToken(t, testCfg.JWTSecret, "RELATIVE"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "primary only")
}
