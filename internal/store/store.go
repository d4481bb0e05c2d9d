// Package store is the persistence boundary: point reads, section-scoped
// patch writes, live subscriptions and the transactional tenant provisioning
// path. Failures propagate to the caller; nothing here retries.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrSlugTaken          = errors.New("slug already in use")
)

// TenantSeed is the admin-supplied payload for provisioning a tenant.
type TenantSeed struct {
	BusinessName string
	Slug         string
	LogoURL      string
	Contact      models.Contact
	SEO          models.SEO
}

// TenantStore is the tenant document surface.
type TenantStore interface {
	GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	ListTenants(ctx context.Context) ([]models.Tenant, error)

	// PatchTenant merges only the patch's section into the stored tenant and
	// refreshes updated_at. Unrelated sections are never written.
	PatchTenant(ctx context.Context, id uuid.UUID, patch TenantPatch) error
	DeleteTenant(ctx context.Context, id uuid.UUID) error

	// CreateTenantAndBindUser atomically creates the tenant and binds the
	// owner's client_id. Fails with ErrPreconditionFailed when the owner is
	// unregistered or is an admin; neither document is written on failure.
	CreateTenantAndBindUser(ctx context.Context, seed TenantSeed, ownerEmail string) (*models.Tenant, error)

	// SubscribeTenant delivers the current value synchronously, then every
	// subsequent successful patch. The returned func unsubscribes.
	SubscribeTenant(id uuid.UUID, fn func(*models.Tenant)) (func(), error)
	SubscribeTenantBySlug(slug string, fn func(*models.Tenant)) (func(), error)
}

// UserStore is the identity binding surface, keyed by lowercased email.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// SetUserRole is idempotent; granting admin clears any client binding.
	SetUserRole(ctx context.Context, email, role string) error
	// BindUserToTenant is idempotent and refuses admins.
	BindUserToTenant(ctx context.Context, email, clientID string) error
}

// LeadStore is the per-tenant inquiry subcollection.
type LeadStore interface {
	CreateLead(ctx context.Context, lead *models.Lead) error
	ListLeads(ctx context.Context, tenantID uuid.UUID) ([]models.Lead, error)
	UpdateLeadStatus(ctx context.Context, tenantID, leadID uuid.UUID, status string) error
}

// Store is the full adapter contract.
type Store interface {
	TenantStore
	UserStore
	LeadStore
}
