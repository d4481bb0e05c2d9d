package dto

import (
	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/models"
)

type CreateTenantRequest struct {
	BusinessName string         `json:"business_name"`
	Slug         string         `json:"slug"`
	OwnerEmail   string         `json:"owner_email"`
	LogoURL      string         `json:"logo_url,omitempty"`
	Contact      models.Contact `json:"contact,omitempty"`
	SEO          models.SEO     `json:"seo,omitempty"`
}

type TenantStatusRequest struct {
	Status models.TenantStatus `json:"status"`
}

type ProfileRequest struct {
	BusinessName string `json:"business_name"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// SessionStateResponse mirrors one editing session back to the dashboard.
type SessionStateResponse struct {
	Section  string      `json:"section"`
	Draft    interface{} `json:"draft"`
	Baseline interface{} `json:"baseline"`
	Dirty    bool        `json:"dirty"`
	Saving   bool        `json:"saving"`
	// Collection sessions only.
	EditingID string      `json:"editing_id,omitempty"`
	TempItem  interface{} `json:"temp_item,omitempty"`
}

type SaveResponse struct {
	Saved bool `json:"saved"`
	Dirty bool `json:"dirty"`
}

// PublicSiteResponse is the anonymous-visitor view of a live tenant.
type PublicSiteResponse struct {
	Slug         string                `json:"slug"`
	BusinessName string                `json:"business_name"`
	LogoURL      string                `json:"logo_url,omitempty"`
	Contact      models.Contact        `json:"contact"`
	SEO          models.SEO            `json:"seo"`
	Offers       models.Offers         `json:"offers"`
	Content      models.WebsiteContent `json:"website_content"`
	Services     models.ServiceList    `json:"services"`
	Gallery      models.GalleryList    `json:"gallery"`
}

func NewPublicSiteResponse(t *models.Tenant) *PublicSiteResponse {
	return &PublicSiteResponse{
		Slug:         t.Slug,
		BusinessName: t.BusinessName,
		LogoURL:      t.LogoURL,
		Contact:      t.Contact,
		SEO:          t.SEO,
		Offers:       t.Offers,
		Content:      t.Content,
		Services:     t.Services,
		Gallery:      t.Gallery,
	}
}

type SubmitLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

type LeadStatusRequest struct {
	Status string `json:"status"`
}

type BulkUploadResponse struct {
	Uploaded int                `json:"uploaded"`
	Items    models.GalleryList `json:"items"`
	Dirty    bool               `json:"dirty"`
}

type TenantListResponse struct {
	Tenants []models.Tenant `json:"tenants"`
	Total   int             `json:"total"`
}

type CreatedTenantResponse struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}
