package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": "dev",
		})
	}
}

// pinger is implemented by venue providers that can check upstream
// connectivity (the real client does, test mocks usually don't).
type pinger interface {
	Ping(ctx context.Context) error
}

// ReadyHandler checks that the venue-information service is reachable.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()

		checks := make(map[string]string)
		allOK := true

		if p, ok := deps.Venues.(pinger); ok {
			if err := p.Ping(ctx); err != nil {
				checks["venue_api"] = "error: " + err.Error()
				allOK = false
			} else {
				checks["venue_api"] = "ok"
			}
		} else if deps.Venues != nil {
			checks["venue_api"] = "ok"
		} else {
			checks["venue_api"] = "not configured"
			allOK = false
		}

		status := "ready"
		code := 200
		if !allOK {
			status = "not ready"
			code = 503
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}
