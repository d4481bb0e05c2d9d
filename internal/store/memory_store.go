package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore implements the full adapter contract in process. It backs the
// test suite and local development without Postgres.
type MemoryStore struct {
	mu      sync.RWMutex
	tenants map[uuid.UUID]*models.Tenant
	users   map[string]*models.User // keyed by lowercased email
	leads   map[uuid.UUID][]models.Lead
	hub     *hub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants: make(map[uuid.UUID]*models.Tenant),
		users:   make(map[string]*models.User),
		leads:   make(map[uuid.UUID][]models.Lead),
		hub:     newHub(),
	}
}

func (s *MemoryStore) GetTenant(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.Clone(), nil
}

func (s *MemoryStore) GetTenantBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tenants {
		if t.Slug == slug {
			return t.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListTenants(_ context.Context) ([]models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		out = append(out, *t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) PatchTenant(_ context.Context, id uuid.UUID, patch TenantPatch) error {
	s.mu.Lock()
	t, ok := s.tenants[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	patch.Apply(t)
	t.UpdatedAt = time.Now()
	updated := t.Clone()
	s.mu.Unlock()

	s.hub.publish(updated)
	return nil
}

func (s *MemoryStore) DeleteTenant(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[id]; !ok {
		return ErrNotFound
	}
	delete(s.tenants, id)
	return nil
}

func (s *MemoryStore) CreateTenantAndBindUser(_ context.Context, seed TenantSeed, ownerEmail string) (*models.Tenant, error) {
	if err := models.ValidateSlug(seed.Slug); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(ownerEmail))

	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[email]
	if !ok {
		return nil, fmt.Errorf("%w: owner %s is not registered", ErrPreconditionFailed, email)
	}
	if owner.Role == models.RoleAdmin {
		return nil, fmt.Errorf("%w: owner %s is an admin", ErrPreconditionFailed, email)
	}
	for _, t := range s.tenants {
		if t.Slug == seed.Slug {
			return nil, ErrSlugTaken
		}
	}

	t := models.NewTenant(seed.BusinessName, seed.Slug, owner)
	t.LogoURL = seed.LogoURL
	t.Contact = seed.Contact
	t.SEO = seed.SEO
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	s.tenants[t.ID] = t
	owner.ClientID = t.ID.String()
	owner.UpdatedAt = now

	return t.Clone(), nil
}

func (s *MemoryStore) SubscribeTenant(id uuid.UUID, fn func(*models.Tenant)) (func(), error) {
	current, err := s.GetTenant(context.Background(), id)
	if err != nil {
		return nil, err
	}
	unsub := s.hub.subscribe(id, fn)
	fn(current)
	return unsub, nil
}

func (s *MemoryStore) SubscribeTenantBySlug(slug string, fn func(*models.Tenant)) (func(), error) {
	current, err := s.GetTenantBySlug(context.Background(), slug)
	if err != nil {
		return nil, err
	}
	unsub := s.hub.subscribe(current.ID, fn)
	fn(current)
	return unsub, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, ok := s.users[email]; ok {
		return fmt.Errorf("user %s already exists", email)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = email
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	s.users[email] = &copied
	return nil
}

func (s *MemoryStore) SetUserRole(_ context.Context, email, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	if role == models.RoleAdmin {
		u.ClientID = ""
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) BindUserToTenant(_ context.Context, email, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return ErrNotFound
	}
	if u.Role == models.RoleAdmin {
		return fmt.Errorf("%w: %s is an admin", ErrPreconditionFailed, u.Email)
	}
	u.ClientID = clientID
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) CreateLead(_ context.Context, lead *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	s.leads[lead.TenantID] = append(s.leads[lead.TenantID], *lead)
	return nil
}

func (s *MemoryStore) ListLeads(_ context.Context, tenantID uuid.UUID) ([]models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]models.Lead(nil), s.leads[tenantID]...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdateLeadStatus(_ context.Context, tenantID, leadID uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	leads := s.leads[tenantID]
	for i := range leads {
		if leads[i].ID == leadID {
			leads[i].Status = status
			leads[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}
