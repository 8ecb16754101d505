package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kalvihub/internal/account"
)

// fail maps the domain error taxonomy onto HTTP statuses: 400 for bad input
// and duplicates, 401 for credential problems, 404 for unknown users. Anything
// outside the taxonomy is an internal fault.
func fail(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, account.ErrValidation),
		errors.Is(err, account.ErrDuplicateAccount),
		errors.Is(err, account.ErrInvalidToken),
		errors.Is(err, account.ErrInvalidResetToken),
		errors.Is(err, account.ErrUnsupportedSubject):
		status = fiber.StatusBadRequest
	case errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, account.ErrAccountLocked),
		errors.Is(err, account.ErrEmailNotVerified):
		status = fiber.StatusUnauthorized
	case errors.Is(err, account.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	body := fiber.Map{"message": err.Error()}

	var locked *account.LockedError
	if errors.As(err, &locked) {
		body["remaining_ms"] = locked.Remaining.Milliseconds()
	}

	return c.Status(status).JSON(body)
}
