package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"hrms/models"
	"hrms/pkg/paseto"
	"hrms/repository"
)

// AuthMiddleware validates the bearer token and checks that the account
// behind it still exists and is active. Claims go into c.Locals("user").
func AuthMiddleware(maker *paseto.Maker, userRepo *repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{
				Success: false,
				Error:   models.ErrUnauthorized,
				Message: "Authorization header is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{
				Success: false,
				Error:   models.ErrUnauthorized,
				Message: "Authorization header format must be Bearer <token>",
			})
		}

		claims, err := maker.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{
				Success: false,
				Error:   models.ErrUnauthorized,
				Message: "Invalid or expired token",
			})
		}

		user, err := userRepo.FindByID(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.APIResponse{
				Success: false,
				Error:   models.ErrServer,
				Message: "Failed to verify account",
			})
		}
		if user == nil || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(models.APIResponse{
				Success: false,
				Error:   models.ErrUnauthorized,
				Message: "Account is inactive or no longer exists",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}
