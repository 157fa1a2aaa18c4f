package controller

import (
	"github.com/gofiber/fiber/v2"

	"dailymeet_backend/pkg/auth"
	"dailymeet_backend/pkg/utils/jwt"
)

var credentialChecker auth.CredentialChecker

func InitAuthController(checker auth.CredentialChecker) {
	credentialChecker = checker
}

type AdminLoginInput struct {
	Passcode string `json:"passcode" validate:"required"`
}

// AdminLogin parolayı kısa ömürlü bir admin token'ı ile takas eder.
// Dashboard böylece parolayı her istekte taşımak zorunda kalmaz.
func AdminLogin(c *fiber.Ctx) error {
	input := new(AdminLoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fieldErrors(err),
		})
	}

	if credentialChecker == nil || !credentialChecker.Check(input.Passcode) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid passcode",
		})
	}

	token, err := jwt.GenerateAdminToken()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}
