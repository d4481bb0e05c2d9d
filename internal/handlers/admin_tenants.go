package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/services"
)

// AdminTenantsHandler is the agency-side tenant provisioning surface.
type AdminTenantsHandler struct {
	tenants *services.TenantService
}

func NewAdminTenantsHandler(tenants *services.TenantService) *AdminTenantsHandler {
	return &AdminTenantsHandler{tenants: tenants}
}

func (h *AdminTenantsHandler) List(c *fiber.Ctx) error {
	tenants, err := h.tenants.List(c.Context())
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(dto.TenantListResponse{Tenants: tenants, Total: len(tenants)})
}

func (h *AdminTenantsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, err := h.tenants.Create(c.Context(), &req)
	if err != nil {
		return respondStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedTenantResponse{
		ID:   created.ID,
		Slug: created.Slug,
	})
}

func (h *AdminTenantsHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid tenant id")
	}

	tenant, err := h.tenants.Get(c.Context(), id)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(tenant)
}

func (h *AdminTenantsHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid tenant id")
	}

	var req dto.TenantStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.tenants.SetStatus(c.Context(), id, req.Status); err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status updated"})
}

func (h *AdminTenantsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid tenant id")
	}

	if err := h.tenants.Delete(c.Context(), id); err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tenant deleted"})
}
