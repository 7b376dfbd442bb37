package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles returns a middleware that rejects requests whose
// authenticated user's role is not in the allowed set. Must run after
// JWTMiddleware: role checks never happen before identity resolution.
func RequireRoles(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: user not resolved",
				"data":    nil,
			})
		}

		for _, role := range allowed {
			if user.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}
}

// RequireVerifiedEmail rejects authenticated users whose email has not
// been verified. Used on routes gated on a confirmed address.
func RequireVerifiedEmail(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: user not resolved",
			"data":    nil,
		})
	}

	if !user.IsEmailVerified {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "EMAIL_NOT_VERIFIED",
			"data":    nil,
		})
	}

	return c.Next()
}
