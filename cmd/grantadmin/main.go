// Command grantadmin promotes an existing user to the admin role. Admins lose
// any tenant binding; the operator panel replaces the dashboard for them.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/ozanatli/microsite-backend/internal/config"
	"github.com/ozanatli/microsite-backend/internal/database"
	"github.com/ozanatli/microsite-backend/internal/logging"
	"github.com/ozanatli/microsite-backend/internal/models"
	"github.com/ozanatli/microsite-backend/internal/store"
)

func main() {
	logging.Setup()

	email := flag.String("email", "", "email of the user to promote")
	flag.Parse()

	if *email == "" {
		slog.Error("usage: grantadmin -email user@example.com")
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
	if err := st.SetUserRole(ctx, *email, models.RoleAdmin); err != nil {
		slog.Error("failed to grant admin", "email", *email, "error", err)
		os.Exit(1)
	}

	slog.Info("admin granted", "email", *email)
}
