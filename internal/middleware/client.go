package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/access"
	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/identity"
)

// ClientRequired gates tenant-dashboard surfaces: the caller must be a client
// with a tenant bound. A client still waiting for assignment gets a distinct
// pending response so the dashboard can show a placeholder instead of an
// error. The bound tenant id is stored in locals for handlers.
func ClientRequired(resolver *access.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := identity.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		email, err := identity.Email(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		binding, err := resolver.Resolve(c.Context(), access.Identity{UID: uid, Email: email})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to resolve access",
			})
		}

		if binding.PendingClient() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Code:    "pending_assignment",
				Message: "Your website is not set up yet. Please contact support.",
			})
		}
		if !binding.BoundClient() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Client access required",
			})
		}

		tenantID, err := uuid.Parse(binding.ClientID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid tenant binding",
			})
		}

		c.Locals("tenant_id", tenantID)
		return c.Next()
	}
}

// TenantID returns the bound tenant id set by ClientRequired.
func TenantID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("tenant_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
