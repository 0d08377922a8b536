package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SecurityHeaders applies the usual browser hardening headers. Public
// capture pages skip X-Frame-Options because the whole point of the
// embed script is to iframe them from arbitrary origins.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-XSS-Protection", "1; mode=block")
		if !strings.HasPrefix(c.Path(), "/public/") {
			c.Set("X-Frame-Options", "DENY")
		}
		return c.Next()
	}
}
