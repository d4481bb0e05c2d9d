package access_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ozanatli/microsite-backend/internal/access"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/store"
)

func TestResolve_AutoProvisionsPendingClient(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := access.NewResolver(s)

	binding, err := r.Resolve(ctx, access.Identity{UID: uuid.New(), Email: "New@X.com"})
	require.NoError(t, err)
	require.Equal(t, models.RoleClient, binding.Role)
	require.Empty(t, binding.ClientID)
	require.True(t, binding.PendingClient())
	require.False(t, binding.BoundClient())

	// The record is persisted under the lowercased email.
	u, err := s.GetUserByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleClient, u.Role)
	require.Empty(t, u.ClientID)
}

func TestResolve_ExistingBindings(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "alice@x.com", Role: models.RoleClient}))
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "root@x.com", Role: models.RoleClient}))
	require.NoError(t, s.SetUserRole(ctx, "root@x.com", models.RoleAdmin))

	r := access.NewResolver(s)

	_, err := s.CreateTenantAndBindUser(ctx, store.TenantSeed{BusinessName: "Acme", Slug: "acme"}, "alice@x.com")
	require.NoError(t, err)

	binding, err := r.Resolve(ctx, access.Identity{Email: "alice@x.com"})
	require.NoError(t, err)
	require.True(t, binding.BoundClient())
	require.False(t, binding.Admin())

	binding, err = r.Resolve(ctx, access.Identity{Email: "root@x.com"})
	require.NoError(t, err)
	require.True(t, binding.Admin())
	require.False(t, binding.BoundClient())
}

func TestResolve_NoEmail(t *testing.T) {
	r := access.NewResolver(store.NewMemoryStore())
	_, err := r.Resolve(context.Background(), access.Identity{})
	require.Error(t, err)
}
