// Command bindtenant assigns a client user to a tenant. The dashboard unlocks
// on the user's next request; no re-login is needed.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ozanatli/microsite-backend/internal/config"
	"github.com/ozanatli/microsite-backend/internal/database"
	"github.com/ozanatli/microsite-backend/internal/logging"
	"github.com/ozanatli/microsite-backend/internal/store"
)

func main() {
	logging.Setup()

	email := flag.String("email", "", "email of the client user")
	tenant := flag.String("tenant", "", "tenant id to bind")
	flag.Parse()

	if *email == "" || *tenant == "" {
		slog.Error("usage: bindtenant -email user@example.com -tenant <tenant-id>")
		os.Exit(1)
	}
	tenantID, err := uuid.Parse(*tenant)
	if err != nil {
		slog.Error("invalid tenant id", "tenant", *tenant, "error", err)
		os.Exit(1)
	}

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st := store.NewGormStore(database.DB)

	// Refuse to bind to a tenant that does not exist.
	if _, err := st.GetTenant(ctx, tenantID); err != nil {
		slog.Error("tenant lookup failed", "tenant", tenantID.String(), "error", err)
		os.Exit(1)
	}

	if err := st.BindUserToTenant(ctx, *email, tenantID.String()); err != nil {
		slog.Error("failed to bind user", "email", *email, "error", err)
		os.Exit(1)
	}

	slog.Info("user bound to tenant", "email", *email, "tenant", tenantID.String())
}
