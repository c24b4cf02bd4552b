package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/reklik/reklik-server/internal/auth"
	"github.com/reklik/reklik-server/internal/config"
	"github.com/reklik/reklik-server/internal/handler"
	"github.com/reklik/reklik-server/internal/middleware"
	"github.com/reklik/reklik-server/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Products  *handler.ProductHandler
	Companies *handler.CompanyHandler
	Scans     *handler.ScanHandler
	Stats     *handler.StatsHandler
}

// Register mounts all application routes on e. Route groups encode the
// authorization model: /v1/auth and the traceability/stats reads are
// public, catalog management requires one of the operating roles, and
// user administration is restricted to administrators.
func Register(e *echo.Echo, h Handlers, tokens *auth.TokenIssuer, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Authentication endpoints; no session required.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/google", h.Auth.GoogleLogin)
	authGroup.POST("/register", h.Auth.Register)

	// Public read-only reporting, served through the response cache.
	public := e.Group("/v1", middleware.NewRedisCache(cacheCfg, rdb))
	public.GET("/trace/:code", h.Stats.Traceability)
	public.GET("/stats/materials", h.Stats.MaterialStats)

	// Everything below requires a valid session token.
	authed := e.Group("/v1", middleware.JWTAuth(tokens))
	authed.GET("/me", h.Users.Me)
	authed.PUT("/me", h.Users.UpdateMe)
	authed.POST("/scans", h.Scans.Create)
	authed.GET("/scans", h.Scans.List)
	authed.GET("/rewards", h.Scans.ListRewards)

	// Catalog management: operating roles only, citizens scan but do not
	// curate.
	catalog := authed.Group("", middleware.RequireRole(
		model.RoleAdministrator, model.RoleCollectionPoint, model.RoleRecycler))
	catalog.GET("/products", h.Products.List)
	catalog.POST("/products", h.Products.Create)
	catalog.GET("/products/:id", h.Products.Get)
	catalog.PUT("/products/:id", h.Products.Update)
	catalog.DELETE("/products/:id", h.Products.Delete)
	catalog.POST("/products/:id/codes", h.Products.GenerateCodes)
	catalog.GET("/products/:id/codes", h.Products.ListCodes)
	catalog.GET("/companies", h.Companies.List)
	catalog.GET("/companies/:id", h.Companies.Get)

	// User administration.
	admin := authed.Group("", middleware.RequireRole(model.RoleAdministrator))
	admin.GET("/users", h.Users.List)
	admin.GET("/users/:id", h.Users.Get)
	admin.PUT("/users/:id", h.Users.Update)
	admin.DELETE("/users/:id", h.Users.Delete)
	admin.POST("/companies", h.Companies.Create)
}
