package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/leadboxhq/leadbox-backend/internal/config"
	"github.com/leadboxhq/leadbox-backend/internal/handlers"
	"github.com/leadboxhq/leadbox-backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	profileHandler *handlers.ProfileHandler,
	publicHandler *handlers.PublicHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Public surface: landing page, capture form, embed script.
	app.Get("/", publicHandler.Home)
	app.Get("/public/form/:public_id", publicHandler.ShowForm)
	app.Post("/public/form/:public_id", publicHandler.SubmitForm)
	app.Get("/public/embed/:public_id.js", publicHandler.EmbedScript)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth — public
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/password-reset", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// Auth — protected
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Dashboard + profile
	api.Get("/dashboard", middleware.JWTProtected(cfg), leadHandler.Dashboard)
	api.Get("/profile", middleware.JWTProtected(cfg), profileHandler.Get)
	api.Put("/profile", middleware.JWTProtected(cfg), profileHandler.Update)

	// Lead mutation + export. Export is registered before :id so the
	// literal path wins.
	leads := api.Group("/leads", middleware.JWTProtected(cfg))
	leads.Get("/export", leadHandler.Export)
	leads.Get("/:id", leadHandler.Get)
	leads.Put("/:id", leadHandler.Update)
	leads.Delete("/:id", leadHandler.Delete)
}
