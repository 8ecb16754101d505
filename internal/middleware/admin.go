package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"kalvihub/internal/config"
)

const HeaderXAPIKey = "X-API-Key"

// AdminMiddleware guards the monitoring endpoints with the configured API key.
func AdminMiddleware(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)

	key := c.Get(HeaderXAPIKey)
	if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(cfg.AdminAPIKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	return c.Next()
}
