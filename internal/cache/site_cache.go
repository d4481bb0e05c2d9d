// Package cache keeps a short-lived Redis copy of public site payloads so
// anonymous traffic rarely touches Postgres. Optional: a nil *SiteCache is
// safe to call and does nothing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ozanatli/microsite-backend/internal/config"
	"github.com/ozanatli/microsite-backend/internal/models"
)

type SiteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns nil when no Redis address is configured.
func New(cfg *config.Config) *SiteCache {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return &SiteCache{client: client, ttl: cfg.SiteCacheTTL}
}

func siteKey(slug string) string {
	return "site:slug:" + slug
}

// Get returns the cached tenant for a slug, or nil on miss. Cache errors are
// logged and reported as misses; the store stays authoritative.
func (c *SiteCache) Get(ctx context.Context, slug string) *models.Tenant {
	if c == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, siteKey(slug)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Error("site cache get failed", "slug", slug, "error", err)
		}
		return nil
	}
	var t models.Tenant
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		slog.Error("site cache decode failed", "slug", slug, "error", err)
		return nil
	}
	return &t
}

// Put stores a live tenant under its slug. Only live tenants are cached.
func (c *SiteCache) Put(ctx context.Context, t *models.Tenant) {
	if c == nil || t.Status != models.TenantStatusLive {
		return
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, siteKey(t.Slug), raw, c.ttl).Err(); err != nil {
		slog.Error("site cache put failed", "slug", t.Slug, "error", err)
	}
}

// Invalidate drops a slug after any write to its tenant.
func (c *SiteCache) Invalidate(ctx context.Context, slug string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, siteKey(slug)).Err(); err != nil {
		slog.Error("site cache invalidate failed", "slug", slug, "error", err)
	}
}

// Close releases the Redis connection.
func (c *SiteCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
