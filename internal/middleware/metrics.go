package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/leadboxhq/leadbox-backend/internal/metrics"
)

// Metrics records request counts and latencies per method/route/status.
// The matched route pattern is used instead of the raw path so lead IDs
// and public identifiers don't explode label cardinality.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}

		path := c.Route().Path
		method := c.Method()
		label := strconv.Itoa(status)

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, label).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path, label).Observe(time.Since(start).Seconds())

		return err
	}
}
