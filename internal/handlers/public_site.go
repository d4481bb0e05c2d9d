package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/services"
	"github.com/ozanatli/microsite-backend/internal/store"
)

// PublicSiteHandler serves the anonymous visitor surface: the site payload
// the rendering layer consumes, and the contact-form intake.
type PublicSiteHandler struct {
	tenants *services.TenantService
	leads   *services.LeadService
}

func NewPublicSiteHandler(tenants *services.TenantService, leads *services.LeadService) *PublicSiteHandler {
	return &PublicSiteHandler{tenants: tenants, leads: leads}
}

func (h *PublicSiteHandler) GetSite(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if err := models.ValidateSlug(slug); err != nil {
		return respondSiteUnavailable(c)
	}

	tenant, err := h.tenants.ResolvePublicSite(c.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondSiteUnavailable(c)
		}
		return respondStoreError(c, err)
	}

	return c.JSON(dto.NewPublicSiteResponse(tenant))
}

func (h *PublicSiteHandler) SubmitLead(c *fiber.Ctx) error {
	slug := c.Params("slug")
	tenant, err := h.tenants.ResolvePublicSite(c.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondSiteUnavailable(c)
		}
		return respondStoreError(c, err)
	}

	var req dto.SubmitLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lead, err := h.leads.Submit(c.Context(), tenant, &req)
	if err != nil {
		return respondStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thanks! We'll get back to you soon.",
		"id":      lead.ID,
	})
}

// respondSiteUnavailable covers both a missing slug and a tenant that is not
// live; anonymous visitors cannot tell the two apart.
func respondSiteUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    "site_unavailable",
		Message: "This site is under construction.",
	})
}
