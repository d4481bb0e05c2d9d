// Package access maps an authenticated identity to its role and tenant
// binding, and provides the route-guard decisions built on that mapping.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/store"
)

// Identity is what the identity collaborator guarantees: a stable id and an
// email. Profile fields are best-effort.
type Identity struct {
	UID         uuid.UUID
	Email       string
	DisplayName string
	PhotoURL    string
}

// Binding is the resolved access state for one identity.
type Binding struct {
	Role     string
	ClientID string
}

// Admin reports whether the binding grants the admin surface.
func (b Binding) Admin() bool { return b.Role == models.RoleAdmin }

// BoundClient reports whether the binding grants a tenant dashboard.
func (b Binding) BoundClient() bool { return b.Role == models.RoleClient && b.ClientID != "" }

// PendingClient reports a client still waiting for a tenant assignment.
// These callers get a placeholder, not an error.
func (b Binding) PendingClient() bool { return b.Role == models.RoleClient && b.ClientID == "" }

type Resolver struct {
	users store.UserStore
}

func NewResolver(users store.UserStore) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the binding for an identity, auto-provisioning a pending
// client record on first sight. ClientID only ever becomes non-empty through
// tenant creation; no unbind exists.
func (r *Resolver) Resolve(ctx context.Context, id Identity) (Binding, error) {
	email := strings.ToLower(strings.TrimSpace(id.Email))
	if email == "" {
		return Binding{}, errors.New("identity has no email")
	}

	user, err := r.users.GetUserByEmail(ctx, email)
	if err == nil {
		return Binding{Role: user.Role, ClientID: user.ClientID}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return Binding{}, fmt.Errorf("resolve %s: %w", email, err)
	}

	user = &models.User{
		ID:          id.UID,
		Email:       email,
		Role:        models.RoleClient,
		ClientID:    "",
		DisplayName: id.DisplayName,
		PhotoURL:    id.PhotoURL,
	}
	if err := r.users.CreateUser(ctx, user); err != nil {
		return Binding{}, fmt.Errorf("provision %s: %w", email, err)
	}
	slog.Info("provisioned pending client", "email", email)
	return Binding{Role: models.RoleClient, ClientID: ""}, nil
}
