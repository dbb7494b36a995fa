package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms/models"
	"hrms/repository"
)

// requestTimeout bounds every database round trip issued by a handler.
const requestTimeout = 5 * time.Second

func respondError(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(models.APIResponse{
		Success: false,
		Error:   kind,
		Message: message,
	})
}

func respondValidation(c *fiber.Ctx, fieldErrors interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.APIResponse{
		Success: false,
		Error:   models.ErrValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

func respondData(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondList(c *fiber.Ctx, count int, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(models.APIResponse{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// respondRepoError maps the repository sentinels onto the envelope;
// anything else is a server error.
func respondRepoError(c *fiber.Ctx, err error, notFoundMsg, duplicateMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, notFoundMsg)
	case errors.Is(err, repository.ErrDuplicate):
		return respondError(c, fiber.StatusConflict, models.ErrDuplicateEntry, duplicateMsg)
	default:
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Internal server error")
	}
}
