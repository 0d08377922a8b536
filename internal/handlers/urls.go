package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/leadboxhq/leadbox-backend/internal/config"
)

// absoluteBaseURL prefers the configured public base URL and falls back
// to the URL the request arrived on. Embed scripts and reset links must
// be absolute because they are consumed from other origins.
func absoluteBaseURL(c *fiber.Ctx, cfg *config.Config) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	return c.BaseURL()
}

func publicFormURL(base, publicID string) string {
	return base + "/public/form/" + publicID
}

func embedScriptURL(base, publicID string) string {
	return base + "/public/embed/" + publicID + ".js"
}
