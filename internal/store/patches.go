package store

import "github.com/ozanatli/microsite-backend/internal/models"

// Dashboard section names. Each maps to exactly one patch type.
const (
	SectionProfile  = "profile"
	SectionContact  = "contact"
	SectionSEO      = "seo"
	SectionContent  = "content"
	SectionOffers   = "offers"
	SectionServices = "services"
	SectionGallery  = "gallery"
	SectionStatus   = "status"
)

// TenantPatch is a closed set of section writes. Each patch knows its own
// columns, so the merge semantics are statically known per call site instead
// of an open-ended bag of keys.
type TenantPatch interface {
	Section() string
	// Changes returns the column set the patch writes.
	Changes() map[string]interface{}
	// Apply merges the patch into an in-memory tenant.
	Apply(t *models.Tenant)
}

// ProfilePatch updates the business identity scalars.
type ProfilePatch struct {
	BusinessName string
	LogoURL      string
}

func (p ProfilePatch) Section() string { return SectionProfile }
func (p ProfilePatch) Changes() map[string]interface{} {
	return map[string]interface{}{"business_name": p.BusinessName, "logo_url": p.LogoURL}
}
func (p ProfilePatch) Apply(t *models.Tenant) {
	t.BusinessName = p.BusinessName
	t.LogoURL = p.LogoURL
}

type ContactPatch struct {
	Contact models.Contact
}

func (p ContactPatch) Section() string { return SectionContact }
func (p ContactPatch) Changes() map[string]interface{} {
	return map[string]interface{}{"contact": p.Contact}
}
func (p ContactPatch) Apply(t *models.Tenant) { t.Contact = p.Contact }

type SEOPatch struct {
	SEO models.SEO
}

func (p SEOPatch) Section() string { return SectionSEO }
func (p SEOPatch) Changes() map[string]interface{} {
	return map[string]interface{}{"seo": p.SEO}
}
func (p SEOPatch) Apply(t *models.Tenant) { t.SEO = p.SEO }

type ContentPatch struct {
	Content models.WebsiteContent
}

func (p ContentPatch) Section() string { return SectionContent }
func (p ContentPatch) Changes() map[string]interface{} {
	return map[string]interface{}{"website_content": p.Content}
}
func (p ContentPatch) Apply(t *models.Tenant) { t.Content = p.Content }

type OffersPatch struct {
	Offers models.Offers
}

func (p OffersPatch) Section() string { return SectionOffers }
func (p OffersPatch) Changes() map[string]interface{} {
	return map[string]interface{}{"offers": p.Offers}
}
func (p OffersPatch) Apply(t *models.Tenant) { t.Offers = p.Offers }

// ServicesPatch replaces the whole ordered list; item-level edits are staged
// in the collection editor and land here as one write.
type ServicesPatch struct {
	Services models.ServiceList
}

func (p ServicesPatch) Section() string { return SectionServices }
func (p ServicesPatch) Changes() map[string]interface{} {
	return map[string]interface{}{"services": p.Services}
}
func (p ServicesPatch) Apply(t *models.Tenant) { t.Services = p.Services }

type GalleryPatch struct {
	Gallery models.GalleryList
}

func (p GalleryPatch) Section() string { return SectionGallery }
func (p GalleryPatch) Changes() map[string]interface{} {
	return map[string]interface{}{"gallery": p.Gallery}
}
func (p GalleryPatch) Apply(t *models.Tenant) { t.Gallery = p.Gallery }

// StatusPatch gates public visibility. Admin only.
type StatusPatch struct {
	Status models.TenantStatus
}

func (p StatusPatch) Section() string { return SectionStatus }
func (p StatusPatch) Changes() map[string]interface{} {
	return map[string]interface{}{"status": p.Status}
}
func (p StatusPatch) Apply(t *models.Tenant) { t.Status = p.Status }
