package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"dailymeet_backend/pkg/auth"
	"dailymeet_backend/pkg/utils/jwt"
)

// AdminAuth /admin/* isteklerini korur. Bearer token ya yapılandırılmış
// parolayla (CredentialChecker) ya da /admin/login'den alınmış admin
// JWT'siyle eşleşmelidir; aksi halde 401 döner.
func AdminAuth(checker auth.CredentialChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}

		if checker.Check(token) {
			c.Locals("admin_auth", "passcode")
			return c.Next()
		}

		if claims, err := jwt.ValidateAdminToken(token); err == nil && claims.Role == "admin" {
			c.Locals("admin_auth", "jwt")
			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}
}
