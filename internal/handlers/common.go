package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/services"
	"github.com/ozanatli/microsite-backend/internal/store"
)

// respondStoreError maps the error taxonomy onto HTTP statuses. NotFound is
// always a distinct 404, never a generic failure.
func respondStoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Code: "not_found", Message: "Not found",
		})
	case errors.Is(err, store.ErrSlugTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Code: "slug_taken", Message: err.Error(),
		})
	case errors.Is(err, store.ErrPreconditionFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Code: "precondition_failed", Message: err.Error(),
		})
	case errors.Is(err, services.ErrValidation), errors.Is(err, models.ErrInvalidSlug):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_failed", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
