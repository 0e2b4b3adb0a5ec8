package routes

import (
	"net/http"
	"time"

	"github.com/diagnoai/diagno-backend/internal/config"
	"github.com/diagnoai/diagno-backend/internal/handlers"
	"github.com/diagnoai/diagno-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/timeout"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	predictHandler *handlers.PredictHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	metricsHandler http.Handler,
) {
	// Prometheus scrape endpoint, outside the rate limited API group
	app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)
	auth.Post("/add-relative",
		middleware.JWTProtected(cfg),
		middleware.PrimaryRequired("Error: Only main users can add relatives."),
		authHandler.AddRelative,
	)

	// Prediction: token optional, reports are stored only for signed-in callers
	// The upstream call inherits this deadline through the request context
	predict := predictHandler.Predict
	if cfg.PredictionTimeout > 0 {
		predict = timeout.NewWithContext(predict, cfg.PredictionTimeout)
	}
	api.Post("/predict/:disease", middleware.OptionalJWT(cfg), predict)

	reports := api.Group("/reports", middleware.JWTProtected(cfg))
	reports.Get("/my-reports", reportHandler.Accessible)
	reports.Get("/accessible-reports", reportHandler.Accessible)
	reports.Get("/by-disease/:type", reportHandler.ByDisease)
	reports.Get("/stats/count", reportHandler.Count)
	reports.Get("/range", reportHandler.Range)
	reports.Post("/save",
		middleware.PrimaryRequired("Error: Only main users can save health assessments."),
		reportHandler.Save,
	)
	reports.Get("/:id", reportHandler.Get)

	users := api.Group("/users", middleware.JWTProtected(cfg))
	users.Get("/profile", userHandler.Profile)
	users.Get("/relatives", userHandler.Relatives)
	users.Get("/owners", userHandler.Owners)
	users.Post("/relatives/:id/remove", userHandler.RemoveRelative)
	users.Get("/search", userHandler.Search)
}
