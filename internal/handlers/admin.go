package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kalvihub/internal/platform/auth"
)

func GetLoginAttempts(c *fiber.Ctx) error {
	authService := c.Locals("auth").(*auth.Service)

	records, err := authService.Attempts(c.Context(), c.Query("email"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"attempts": records})
}

func GetUserStats(c *fiber.Ctx) error {
	authService := c.Locals("auth").(*auth.Service)

	stats, err := authService.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(stats)
}
