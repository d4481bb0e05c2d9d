package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/middleware"
	"github.com/ozanatli/microsite-backend/internal/services"
)

// DashboardLeadsHandler exposes the lead inbox to the tenant owner.
type DashboardLeadsHandler struct {
	leads *services.LeadService
}

func NewDashboardLeadsHandler(leads *services.LeadService) *DashboardLeadsHandler {
	return &DashboardLeadsHandler{leads: leads}
}

func (h *DashboardLeadsHandler) List(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	leads, err := h.leads.List(c.Context(), tenantID)
	if err != nil {
		return respondStoreError(c, err)
	}

	return c.JSON(fiber.Map{"leads": leads, "count": len(leads)})
}

func (h *DashboardLeadsHandler) UpdateStatus(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	leadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lead ID")
	}

	var req dto.LeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.leads.UpdateStatus(c.Context(), tenantID, leadID, req.Status); err != nil {
		return respondStoreError(c, err)
	}

	return c.JSON(fiber.Map{"id": leadID, "status": req.Status})
}

func (h *DashboardLeadsHandler) Export(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	buf, err := h.leads.Export(c.Context(), tenantID)
	if err != nil {
		return respondStoreError(c, err)
	}

	filename := fmt.Sprintf("leads-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
