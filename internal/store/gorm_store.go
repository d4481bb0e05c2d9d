package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanatli/microsite-backend/internal/models"
)

var _ Store = (*GormStore)(nil)

// GormStore is the Postgres-backed adapter.
type GormStore struct {
	db  *gorm.DB
	hub *hub
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, hub: newHub()}
}

func (s *GormStore) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var t models.Tenant
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

func (s *GormStore) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var t models.Tenant
	if err := s.db.WithContext(ctx).First(&t, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tenant by slug: %w", err)
	}
	return &t, nil
}

func (s *GormStore) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

func (s *GormStore) PatchTenant(ctx context.Context, id uuid.UUID, patch TenantPatch) error {
	res := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", id).
		Updates(patch.Changes())
	if res.Error != nil {
		return fmt.Errorf("patch tenant %s: %w", patch.Section(), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	if t, err := s.GetTenant(ctx, id); err == nil {
		s.hub.publish(t)
	}
	return nil
}

func (s *GormStore) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Tenant{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete tenant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateTenantAndBindUser(ctx context.Context, seed TenantSeed, ownerEmail string) (*models.Tenant, error) {
	if err := models.ValidateSlug(seed.Slug); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(ownerEmail))

	var created *models.Tenant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Where("email = ?", email).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: owner %s is not registered", ErrPreconditionFailed, email)
			}
			return err
		}
		if owner.Role == models.RoleAdmin {
			return fmt.Errorf("%w: owner %s is an admin", ErrPreconditionFailed, email)
		}

		var clash int64
		if err := tx.Model(&models.Tenant{}).Where("slug = ?", seed.Slug).Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return ErrSlugTaken
		}

		t := models.NewTenant(seed.BusinessName, seed.Slug, &owner)
		t.LogoURL = seed.LogoURL
		t.Contact = seed.Contact
		t.SEO = seed.SEO
		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("create tenant: %w", err)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", owner.ID).
			Update("client_id", t.ID.String()).Error; err != nil {
			return fmt.Errorf("bind owner: %w", err)
		}

		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *GormStore) SubscribeTenant(id uuid.UUID, fn func(*models.Tenant)) (func(), error) {
	current, err := s.GetTenant(context.Background(), id)
	if err != nil {
		return nil, err
	}
	unsub := s.hub.subscribe(id, fn)
	fn(current)
	return unsub, nil
}

func (s *GormStore) SubscribeTenantBySlug(slug string, fn func(*models.Tenant)) (func(), error) {
	current, err := s.GetTenantBySlug(context.Background(), slug)
	if err != nil {
		return nil, err
	}
	unsub := s.hub.subscribe(current.ID, fn)
	fn(current)
	return unsub, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) SetUserRole(ctx context.Context, email, role string) error {
	updates := map[string]interface{}{"role": role}
	if role == models.RoleAdmin {
		// Invariant: an admin never carries a client binding.
		updates["client_id"] = ""
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("set role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) BindUserToTenant(ctx context.Context, email, clientID string) error {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return fmt.Errorf("%w: %s is an admin", ErrPreconditionFailed, user.Email)
	}
	return s.db.WithContext(ctx).Model(user).Update("client_id", clientID).Error
}

func (s *GormStore) CreateLead(ctx context.Context, lead *models.Lead) error {
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (s *GormStore) ListLeads(ctx context.Context, tenantID uuid.UUID) ([]models.Lead, error) {
	var leads []models.Lead
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (s *GormStore) UpdateLeadStatus(ctx context.Context, tenantID, leadID uuid.UUID, status string) error {
	res := s.db.WithContext(ctx).Model(&models.Lead{}).
		Where("id = ? AND tenant_id = ?", leadID, tenantID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update lead status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
