package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/cache"
	"github.com/ozanatli/microsite-backend/internal/dto"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/store"
)

var ErrValidation = errors.New("validation failed")

// TenantService orchestrates tenant provisioning and section writes, keeping
// the public cache coherent with every write.
type TenantService struct {
	store store.Store
	cache *cache.SiteCache
}

func NewTenantService(st store.Store, sc *cache.SiteCache) *TenantService {
	return &TenantService{store: st, cache: sc}
}

func (s *TenantService) Create(ctx context.Context, req *dto.CreateTenantRequest) (*models.Tenant, error) {
	if req.BusinessName == "" {
		return nil, fmt.Errorf("%w: business name is required", ErrValidation)
	}
	if req.OwnerEmail == "" {
		return nil, fmt.Errorf("%w: owner email is required", ErrValidation)
	}
	if err := models.ValidateSlug(req.Slug); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	seed := store.TenantSeed{
		BusinessName: req.BusinessName,
		Slug:         req.Slug,
		LogoURL:      req.LogoURL,
		Contact:      req.Contact,
		SEO:          req.SEO,
	}
	created, err := s.store.CreateTenantAndBindUser(ctx, seed, req.OwnerEmail)
	if err != nil {
		return nil, err
	}

	slog.Info("tenant created", "tenant_id", created.ID.String(), "slug", created.Slug, "owner", created.OwnerEmail)
	return created, nil
}

func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

func (s *TenantService) List(ctx context.Context) ([]models.Tenant, error) {
	return s.store.ListTenants(ctx)
}

// Patch applies one section write and invalidates the public cache.
func (s *TenantService) Patch(ctx context.Context, id uuid.UUID, patch store.TenantPatch) error {
	if err := s.store.PatchTenant(ctx, id, patch); err != nil {
		return err
	}
	if t, err := s.store.GetTenant(ctx, id); err == nil {
		s.cache.Invalidate(ctx, t.Slug)
	}
	return nil
}

func (s *TenantService) SetStatus(ctx context.Context, id uuid.UUID, status models.TenantStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Patch(ctx, id, store.StatusPatch{Status: status})
}

// Delete removes the tenant. Its leads are left behind; the dashboard that
// listed them is gone with the binding.
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.store.GetTenant(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTenant(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, t.Slug)
	slog.Info("tenant deleted", "tenant_id", id.String(), "slug", t.Slug)
	return nil
}

// ResolvePublicSite returns a tenant for anonymous rendering. Only live
// tenants are servable; draft and suspended resolve to ErrNotFound so the
// visitor sees an under-construction page, not an error.
func (s *TenantService) ResolvePublicSite(ctx context.Context, slug string) (*models.Tenant, error) {
	if t := s.cache.Get(ctx, slug); t != nil {
		return t, nil
	}

	t, err := s.store.GetTenantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TenantStatusLive {
		return nil, store.ErrNotFound
	}

	s.cache.Put(ctx, t)
	return t, nil
}
