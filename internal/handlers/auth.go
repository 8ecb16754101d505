package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kalvihub/internal/config"
	"kalvihub/internal/platform/auth"
)

func Register(c *fiber.Ctx) error {
	authService := c.Locals("auth").(*auth.Service)

	type RegisterInput struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
		Grade    string `json:"grade" validate:"required"`
		School   string `json:"school" validate:"required"`
	}

	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "All fields are required"})
	}

	user, token, err := authService.Register(c.Context(), auth.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Grade:    input.Grade,
		School:   input.School,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":               user,
		"verification_token": token,
		"message":            "Registration successful. Please verify your email.",
	})
}

func SigninWithPassword(c *fiber.Ctx) error {
	authService := c.Locals("auth").(*auth.Service)

	type LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email and password are required"})
	}

	ip := c.IP()
	if len(c.IPs()) > 1 {
		ip = c.IPs()[0]
	}

	user, err := authService.Login(c.Context(), input.Email, input.Password, ip)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"message": "Login successful",
	})
}

func VerifyEmail(c *fiber.Ctx) error {
	authService := c.Locals("auth").(*auth.Service)

	type VerifyInput struct {
		Token string `json:"token" validate:"required"`
	}

	var input VerifyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Verification token is required"})
	}

	if err := authService.VerifyEmail(c.Context(), input.Token); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Email verified successfully. You can now log in."})
}

func ForgotPassword(c *fiber.Ctx) error {
	authService := c.Locals("auth").(*auth.Service)

	type ForgotPasswordInput struct {
		Email string `json:"email" validate:"required,email"`
	}

	var input ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "A valid email is required"})
	}

	token, err := authService.RequestPasswordReset(c.Context(), input.Email)
	if err != nil {
		return fail(c, err)
	}

	// Same response whether or not the account exists.
	body := fiber.Map{"message": "If the email exists, a reset link has been sent."}
	if token != "" {
		body["reset_token"] = token
	}

	return c.JSON(body)
}

func ResetPassword(c *fiber.Ctx) error {
	authService := c.Locals("auth").(*auth.Service)

	type ResetPasswordInput struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required"`
	}

	var input ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Token and new password are required"})
	}

	if err := authService.ResetPassword(c.Context(), input.Token, input.NewPassword); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully. You can now log in."})
}
