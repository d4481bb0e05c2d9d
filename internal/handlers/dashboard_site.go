package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/middleware"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/services"
	"github.com/ozanatli/microsite-backend/internal/store"
)

// DashboardSiteHandler serves the bound tenant's record and the direct
// section writes. The direct PATCH endpoints write immediately; staged
// editing with an explicit save goes through DashboardSessionsHandler.
type DashboardSiteHandler struct {
	tenants *services.TenantService
}

func NewDashboardSiteHandler(tenants *services.TenantService) *DashboardSiteHandler {
	return &DashboardSiteHandler{tenants: tenants}
}

func (h *DashboardSiteHandler) GetSite(c *fiber.Ctx) error {
	tenant, err := h.tenants.Get(c.Context(), middleware.TenantID(c))
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(tenant)
}

func (h *DashboardSiteHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.BusinessName == "" {
		return badRequest(c, "Business name is required")
	}
	return h.patch(c, store.ProfilePatch{BusinessName: req.BusinessName, LogoURL: req.LogoURL})
}

func (h *DashboardSiteHandler) UpdateContact(c *fiber.Ctx) error {
	var contact models.Contact
	if err := c.BodyParser(&contact); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return h.patch(c, store.ContactPatch{Contact: contact})
}

func (h *DashboardSiteHandler) UpdateSEO(c *fiber.Ctx) error {
	var seo models.SEO
	if err := c.BodyParser(&seo); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return h.patch(c, store.SEOPatch{SEO: seo})
}

func (h *DashboardSiteHandler) UpdateContent(c *fiber.Ctx) error {
	var content models.WebsiteContent
	if err := c.BodyParser(&content); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return h.patch(c, store.ContentPatch{Content: content})
}

func (h *DashboardSiteHandler) UpdateOffers(c *fiber.Ctx) error {
	var offers models.Offers
	if err := c.BodyParser(&offers); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return h.patch(c, store.OffersPatch{Offers: offers})
}

// GalleryGroups returns the gallery grouped by category, the shape the
// dashboard gallery screen renders.
func (h *DashboardSiteHandler) GalleryGroups(c *fiber.Ctx) error {
	tenant, err := h.tenants.Get(c.Context(), middleware.TenantID(c))
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(fiber.Map{"groups": tenant.Gallery.ByCategory()})
}

func (h *DashboardSiteHandler) patch(c *fiber.Ctx, p store.TenantPatch) error {
	tenantID := middleware.TenantID(c)
	if err := h.tenants.Patch(c.Context(), tenantID, p); err != nil {
		return respondStoreError(c, err)
	}
	tenant, err := h.tenants.Get(c.Context(), tenantID)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(tenant)
}
