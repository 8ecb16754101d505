package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kalvihub/internal/curriculum"
)

func GetSubjects(c *fiber.Ctx) error {
	grade := c.Query("grade", curriculum.GradeSSLC)

	if !curriculum.SupportedGrade(grade) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unsupported grade"})
	}

	return c.JSON(fiber.Map{"subjects": curriculum.ForGrade(grade)})
}

func GetIP(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ip": c.IP()})
}
