package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/store"
)

func newStoreWithClient(t *testing.T, email string) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, s.CreateUser(context.Background(), &models.User{
		Email: email,
		Role:  models.RoleClient,
	}))
	return s
}

func TestCreateTenantAndBindUser(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithClient(t, "alice@x.com")

	created, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{
		BusinessName: "Acme",
		Slug:         "acme",
	}, "alice@x.com")
	require.NoError(t, err)
	require.Equal(t, "acme", created.Slug)
	require.Equal(t, models.TenantStatusLive, created.Status)
	require.Empty(t, created.Services)
	require.Empty(t, created.Gallery)

	owner, err := s.GetUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ID.String(), owner.ClientID)
}

func TestCreateTenant_UnregisteredOwnerFailsAtomically(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	_, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{
		BusinessName: "Acme",
		Slug:         "acme",
	}, "ghost@x.com")
	require.ErrorIs(t, err, store.ErrPreconditionFailed)

	tenants, err := s.ListTenants(ctx)
	require.NoError(t, err)
	require.Empty(t, tenants)
}

func TestCreateTenant_AdminOwnerRejected(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithClient(t, "root@x.com")
	require.NoError(t, s.SetUserRole(ctx, "root@x.com", models.RoleAdmin))

	_, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{
		BusinessName: "Acme",
		Slug:         "acme",
	}, "root@x.com")
	require.ErrorIs(t, err, store.ErrPreconditionFailed)
}

func TestCreateTenant_SlugRules(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithClient(t, "alice@x.com")
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "bob@x.com", Role: models.RoleClient}))

	_, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{BusinessName: "A", Slug: "Not A Slug"}, "alice@x.com")
	require.ErrorIs(t, err, models.ErrInvalidSlug)

	_, err = s.CreateTenantAndBindUser(ctx, store.TenantSeed{BusinessName: "A", Slug: "acme"}, "alice@x.com")
	require.NoError(t, err)

	_, err = s.CreateTenantAndBindUser(ctx, store.TenantSeed{BusinessName: "B", Slug: "acme"}, "bob@x.com")
	require.ErrorIs(t, err, store.ErrSlugTaken)
}

func TestPatchTenant_ScopedToSection(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithClient(t, "alice@x.com")
	created, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{
		BusinessName: "Acme",
		Slug:         "acme",
		Contact:      models.Contact{Phone: "1"},
	}, "alice@x.com")
	require.NoError(t, err)

	require.NoError(t, s.PatchTenant(ctx, created.ID, store.SEOPatch{
		SEO: models.SEO{Title: "Acme Cafe"},
	}))

	got, err := s.GetTenant(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Cafe", got.SEO.Title)
	// Untouched sections survive.
	require.Equal(t, "1", got.Contact.Phone)
	require.Equal(t, "Acme", got.BusinessName)
	require.True(t, got.UpdatedAt.After(created.UpdatedAt) || got.UpdatedAt.Equal(created.UpdatedAt))
}

func TestPatchTenant_NotFound(t *testing.T) {
	s := store.NewMemoryStore()
	err := s.PatchTenant(context.Background(), uuid.New(), store.OffersPatch{})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubscribeTenant_DeliversCurrentThenUpdates(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithClient(t, "alice@x.com")
	created, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{
		BusinessName: "Acme",
		Slug:         "acme",
	}, "alice@x.com")
	require.NoError(t, err)

	var seen []string
	unsub, err := s.SubscribeTenant(created.ID, func(t *models.Tenant) {
		seen = append(seen, t.BusinessName)
	})
	require.NoError(t, err)
	// Current value arrives synchronously on subscribe.
	require.Equal(t, []string{"Acme"}, seen)

	require.NoError(t, s.PatchTenant(ctx, created.ID, store.ProfilePatch{BusinessName: "Acme 2"}))
	require.Equal(t, []string{"Acme", "Acme 2"}, seen)

	unsub()
	require.NoError(t, s.PatchTenant(ctx, created.ID, store.ProfilePatch{BusinessName: "Acme 3"}))
	require.Len(t, seen, 2)

	// Unsubscribe is idempotent.
	unsub()
}

func TestSubscribeTenantBySlug_UnknownSlug(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.SubscribeTenantBySlug("missing", func(*models.Tenant) {})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUserRole_AdminClearsBinding(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithClient(t, "alice@x.com")
	_, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{BusinessName: "Acme", Slug: "acme"}, "alice@x.com")
	require.NoError(t, err)

	require.NoError(t, s.SetUserRole(ctx, "alice@x.com", models.RoleAdmin))
	u, err := s.GetUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, u.Role)
	require.Empty(t, u.ClientID)

	require.ErrorIs(t, s.SetUserRole(ctx, "nobody@x.com", models.RoleAdmin), store.ErrNotFound)
}

func TestBindUserToTenant(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithClient(t, "alice@x.com")
	id := uuid.NewString()

	require.NoError(t, s.BindUserToTenant(ctx, "alice@x.com", id))
	// Idempotent.
	require.NoError(t, s.BindUserToTenant(ctx, "alice@x.com", id))

	u, err := s.GetUserByEmail(ctx, "Alice@X.com")
	require.NoError(t, err)
	require.Equal(t, id, u.ClientID)

	require.NoError(t, s.SetUserRole(ctx, "alice@x.com", models.RoleAdmin))
	require.ErrorIs(t, s.BindUserToTenant(ctx, "alice@x.com", id), store.ErrPreconditionFailed)
}

func TestLeadLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithClient(t, "alice@x.com")
	created, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{BusinessName: "Acme", Slug: "acme"}, "alice@x.com")
	require.NoError(t, err)

	lead := &models.Lead{
		TenantID: created.ID,
		Name:     "Visitor",
		Phone:    "555",
		Message:  "call me",
	}
	require.NoError(t, s.CreateLead(ctx, lead))
	require.Equal(t, models.LeadStatusNew, lead.Status)

	leads, err := s.ListLeads(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, leads, 1)

	require.NoError(t, s.UpdateLeadStatus(ctx, created.ID, lead.ID, models.LeadStatusContacted))
	leads, _ = s.ListLeads(ctx, created.ID)
	require.Equal(t, models.LeadStatusContacted, leads[0].Status)

	require.ErrorIs(t, s.UpdateLeadStatus(ctx, created.ID, uuid.New(), models.LeadStatusResolved), store.ErrNotFound)
	// Leads are scoped to their tenant.
	require.ErrorIs(t, s.UpdateLeadStatus(ctx, uuid.New(), lead.ID, models.LeadStatusResolved), store.ErrNotFound)
}
