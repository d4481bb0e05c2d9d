package models

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantStatusDraft     TenantStatus = "draft"
	TenantStatusLive      TenantStatus = "live"
	TenantStatusSuspended TenantStatus = "suspended"
)

func (s TenantStatus) Valid() bool {
	switch s {
	case TenantStatusDraft, TenantStatusLive, TenantStatusSuspended:
		return true
	}
	return false
}

var (
	ErrInvalidSlug = errors.New("slug must contain only lowercase letters, digits and hyphens")

	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ValidateSlug enforces the public URL segment format.
func ValidateSlug(slug string) error {
	if slug == "" || !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// Tenant is one client business's website data. Nested sections are stored
// as jsonb columns and patched independently per dashboard screen.
type Tenant struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug         string         `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Status       TenantStatus   `gorm:"size:20;not null;default:'live'" json:"status"`
	BusinessName string         `gorm:"size:255;not null" json:"business_name"`
	LogoURL      string         `gorm:"size:500" json:"logo_url"`
	OwnerEmail   string         `gorm:"size:255;not null;index" json:"owner_email"`
	OwnerID      uuid.UUID      `gorm:"type:uuid" json:"owner_id"`
	Contact      Contact        `gorm:"type:jsonb;default:'{}'" json:"contact"`
	SEO          SEO            `gorm:"type:jsonb;default:'{}'" json:"seo"`
	Offers       Offers         `gorm:"type:jsonb;default:'{}'" json:"offers"`
	Content      WebsiteContent `gorm:"column:website_content;type:jsonb;default:'{}'" json:"website_content"`
	Services     ServiceList    `gorm:"type:jsonb;default:'[]'" json:"services"`
	Gallery      GalleryList    `gorm:"type:jsonb;default:'[]'" json:"gallery"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewTenant builds a tenant with creation defaults: immediately live, empty
// collections. There is no separate publish step.
func NewTenant(businessName, slug string, owner *User) *Tenant {
	return &Tenant{
		ID:           uuid.New(),
		Slug:         slug,
		Status:       TenantStatusLive,
		BusinessName: businessName,
		OwnerEmail:   owner.Email,
		OwnerID:      owner.ID,
		Services:     ServiceList{},
		Gallery:      GalleryList{},
	}
}

// Clone returns a deep copy safe to hand to subscribers.
func (t *Tenant) Clone() *Tenant {
	out := *t
	out.Services = make(ServiceList, len(t.Services))
	for i, s := range t.Services {
		out.Services[i] = s
		out.Services[i].Images = append([]string(nil), s.Images...)
	}
	out.Gallery = append(GalleryList{}, t.Gallery...)
	return &out
}

// Contact holds the tenant's public contact details. All fields optional.
type Contact struct {
	Phone    string `json:"phone,omitempty"`
	Whatsapp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	MapLink  string `json:"map_link,omitempty"`
}

func (c Contact) Value() (driver.Value, error) { return jsonValue(c) }
func (c *Contact) Scan(v interface{}) error    { return jsonScan(c, v) }

// SEO holds the public page metadata.
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
}

func (s SEO) Value() (driver.Value, error) { return jsonValue(s) }
func (s *SEO) Scan(v interface{}) error    { return jsonScan(s, v) }

// Offers is the single promotional banner toggle.
type Offers struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text,omitempty"`
}

func (o Offers) Value() (driver.Value, error) { return jsonValue(o) }
func (o *Offers) Scan(v interface{}) error    { return jsonScan(o, v) }

// WebsiteContent is the free-form copy block for the public page.
type WebsiteContent struct {
	Headline string `json:"headline,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	About    string `json:"about,omitempty"`
}

func (w WebsiteContent) Value() (driver.Value, error) { return jsonValue(w) }
func (w *WebsiteContent) Scan(v interface{}) error    { return jsonScan(w, v) }

// Service is one offered service. Order in the list is display order.
type Service struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// ItemID satisfies the collection editor's item contract.
func (s Service) ItemID() string { return s.ID }

// NewService synthesizes an empty service with a fresh id.
func NewService() Service {
	return Service{ID: uuid.NewString()}
}

type ServiceList []Service

func (l ServiceList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *ServiceList) Scan(v interface{}) error    { return jsonScan(l, v) }
