package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"

	"github.com/swachhjanta/backend/internal/config"
	"github.com/swachhjanta/backend/internal/handlers"
	"github.com/swachhjanta/backend/internal/middleware"
	"github.com/swachhjanta/backend/internal/store"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	st store.Store,
	redisClient *redis.Client,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	authorityHandler *handlers.AuthorityHandler,
	chatHandler *handlers.ChatHandler,
) {
	// Uploaded report photos are served directly.
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth routes are public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so the JWT middleware doesn't affect public routes
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	api.Post("/reports", middleware.JWTProtected(cfg),
		middleware.ReportRateLimiter(redisClient, cfg.ReportDailyLimit), reportHandler.Create)
	api.Get("/reports", middleware.JWTProtected(cfg), reportHandler.ListMine)
	api.Get("/reports/stats", middleware.JWTProtected(cfg), reportHandler.MyStats)
	api.Get("/reports/:id", middleware.JWTProtected(cfg), reportHandler.Get)
	api.Post("/reports/:id/feedback", middleware.JWTProtected(cfg), reportHandler.SubmitFeedback)

	api.Post("/chat", middleware.JWTProtected(cfg), chatHandler.Ask)

	// Authority panel (protected + authority role required)
	authority := api.Group("/authority", middleware.JWTProtected(cfg), middleware.AuthorityRequired(st))
	authority.Get("/reports", authorityHandler.ListReports)
	authority.Get("/stats", authorityHandler.SystemStats)
	authority.Get("/stats/categories", authorityHandler.CategoryStats)
	authority.Get("/locations", authorityHandler.Locations)
	authority.Get("/employees", authorityHandler.ListEmployees)
	authority.Put("/employees", authorityHandler.UpsertEmployee)
	authority.Delete("/employees/:id", authorityHandler.DeactivateEmployee)
	authority.Get("/employees/:id/performance", authorityHandler.EmployeePerformance)
	authority.Post("/reports/:id/assign", authorityHandler.Assign)
	authority.Patch("/reports/:id/status", authorityHandler.UpdateStatus)
}
