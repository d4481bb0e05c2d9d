package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ozanatli/microsite-backend/internal/access"
	"github.com/ozanatli/microsite-backend/internal/config"
	"github.com/ozanatli/microsite-backend/internal/handlers"
	"github.com/ozanatli/microsite-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	resolver *access.Resolver,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	adminTenants *handlers.AdminTenantsHandler,
	dashboardSite *handlers.DashboardSiteHandler,
	dashboardSessions *handlers.DashboardSessionsHandler,
	dashboardLeads *handlers.DashboardLeadsHandler,
	publicSite *handlers.PublicSiteHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no auth required)
	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public site surface (anonymous visitors)
	public := api.Group("/public")
	public.Get("/sites/:slug", publicSite.GetSite)
	public.Post("/sites/:slug/leads", publicSite.SubmitLead)

	// Operator panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(resolver, cfg))
	admin.Get("/tenants", adminTenants.List)
	admin.Post("/tenants", adminTenants.Create)
	admin.Get("/tenants/:id", adminTenants.Get)
	admin.Patch("/tenants/:id/status", adminTenants.SetStatus)
	admin.Delete("/tenants/:id", adminTenants.Delete)

	// Tenant dashboard (protected + bound client required)
	dashboard := api.Group("/dashboard", middleware.JWTProtected(cfg), middleware.ClientRequired(resolver))
	dashboard.Get("/site", dashboardSite.GetSite)
	dashboard.Patch("/site/profile", dashboardSite.UpdateProfile)
	dashboard.Patch("/site/contact", dashboardSite.UpdateContact)
	dashboard.Patch("/site/seo", dashboardSite.UpdateSEO)
	dashboard.Patch("/site/content", dashboardSite.UpdateContent)
	dashboard.Patch("/site/offers", dashboardSite.UpdateOffers)
	dashboard.Get("/gallery/groups", dashboardSite.GalleryGroups)

	// Staged editing sessions: drafts live server-side, persisted only on save
	sessions := dashboard.Group("/sessions")
	sessions.Post("/gallery/bulk-upload", dashboardSessions.BulkUpload)
	sessions.Post("/:section", dashboardSessions.Open)
	sessions.Get("/:section", dashboardSessions.State)
	sessions.Delete("/:section", dashboardSessions.Close)
	sessions.Put("/:section/draft", dashboardSessions.SetDraft)
	sessions.Post("/:section/save", dashboardSessions.Save)
	sessions.Post("/:section/discard", dashboardSessions.Discard)
	sessions.Post("/:section/items", dashboardSessions.AddItem)
	sessions.Put("/:section/items/temp", dashboardSessions.UpdateTemp)
	sessions.Post("/:section/items/commit", dashboardSessions.CommitEdit)
	sessions.Post("/:section/items/cancel", dashboardSessions.CancelEdit)
	sessions.Post("/:section/items/:itemId/edit", dashboardSessions.BeginEdit)
	sessions.Post("/:section/items/:itemId/delete-request", dashboardSessions.RequestDelete)
	sessions.Post("/:section/items/:itemId/delete-confirm", dashboardSessions.ConfirmDelete)

	dashboard.Get("/leads", dashboardLeads.List)
	dashboard.Patch("/leads/:id/status", dashboardLeads.UpdateStatus)
	dashboard.Get("/leads/export", dashboardLeads.Export)
}
