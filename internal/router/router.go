package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/handler"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video   *handler.VideoHandler
	Channel *handler.ChannelHandler
	Config  *handler.ConfigHandler
	Cache   *handler.CacheHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	browseLimiter := middleware.NewBrowseRateLimiter()
	lookupLimiter := middleware.NewLookupRateLimiter()
	adminLimiter := middleware.NewAdminRateLimiter()

	// Health checks (before API group, no rate limiting)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	// Video routes. Literal paths must come before the :videoId wildcard.
	api.Get("/videos/trending", h.Video.Trending, browseLimiter.Handler())
	api.Get("/videos/search", h.Video.Search, browseLimiter.Handler())
	api.Get("/videos/shorts", h.Video.Shorts, browseLimiter.Handler())
	api.Get("/videos/:videoId", h.Video.GetByID, lookupLimiter.Handler())

	// Channel routes
	api.Get("/channels/:channelId", h.Channel.GetByID, lookupLimiter.Handler())

	// Runtime config routes
	api.Get("/config", h.Config.Get)
	api.Patch("/config", h.Config.Patch, adminLimiter.Handler())

	// Cache administration
	api.Delete("/cache", h.Cache.Clear, adminLimiter.Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats)
}
