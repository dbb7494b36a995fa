package middleware

import (
	"github.com/gofiber/fiber/v2"

	"hrms/models"
	"hrms/pkg/paseto"
)

// RoleMiddleware allows the request through only when the authenticated
// role is one of the listed roles. Must run after AuthMiddleware.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*paseto.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{
				Success: false,
				Error:   models.ErrUnauthorized,
				Message: "Not authenticated",
			})
		}

		for _, role := range allowedRoles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(models.APIResponse{
			Success: false,
			Error:   models.ErrForbidden,
			Message: "Access denied. Insufficient role",
		})
	}
}

// AdminMiddleware is a shorthand for admin-only routes.
func AdminMiddleware() fiber.Handler {
	return RoleMiddleware("admin")
}
