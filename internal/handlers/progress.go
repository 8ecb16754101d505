package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kalvihub/internal/config"
	"kalvihub/internal/platform/progress"
)

func RecordActivity(c *fiber.Ctx) error {
	progressService := c.Locals("progress").(*progress.Service)

	type ActivityInput struct {
		UserID   string `json:"user_id" validate:"required"`
		Subject  string `json:"subject" validate:"required"`
		Activity string `json:"activity" validate:"required"`
		Data     struct {
			Score               *int `json:"score"`
			Duration            int  `json:"duration"`
			UnitCompleted       bool `json:"unit_completed"`
			AssessmentCompleted bool `json:"assessment_completed"`
		} `json:"data"`
	}

	var input ActivityInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User ID, subject, and activity type are required"})
	}

	user, err := progressService.RecordActivity(c.Context(), input.UserID, input.Subject,
		progress.ActivityKind(input.Activity), progress.Details{
			Score:               input.Data.Score,
			DurationMinutes:     input.Data.Duration,
			UnitCompleted:       input.Data.UnitCompleted,
			AssessmentCompleted: input.Data.AssessmentCompleted,
		})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"message": "Progress updated successfully",
	})
}

func GetProgress(c *fiber.Ctx) error {
	progressService := c.Locals("progress").(*progress.Service)

	user, err := progressService.Progress(c.Context(), c.Params("user_id"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

func GetStudySessions(c *fiber.Ctx) error {
	progressService := c.Locals("progress").(*progress.Service)

	limit := c.QueryInt("limit", 10)

	sessions, err := progressService.Sessions(c.Context(), c.Params("user_id"), limit)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}
