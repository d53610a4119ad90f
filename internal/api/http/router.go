package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/znapfile/edge-gateway/internal/api/http/handlers"
	"github.com/znapfile/edge-gateway/internal/assets"
	"github.com/znapfile/edge-gateway/internal/auth"
	apperrors "github.com/znapfile/edge-gateway/pkg/util/errorutil"
)

// APIPrefix is the path prefix the gateway claims; everything else is
// delegated to the static-asset collaborator.
const APIPrefix = "/api/v1"

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Upload         *handlers.UploadHandler
	AuthMiddleware *auth.AuthMiddleware
	Assets         assets.Collaborator
}

// RegisterRoutes wires HTTP routes. Registration order is the dispatch
// order: preflight, concrete API routes, API not-found fallback, asset
// delegation.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group(APIPrefix, corsMiddleware())

	api.All("/health", cfg.Health.Check)

	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/refresh", cfg.Auth.Refresh)
	api.Get("/auth/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api.Post("/upload/anonymous", cfg.Upload.Anonymous)

	api.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound()
	})

	app.Use(cfg.Assets.Serve)
}
