package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/workspace_dashboard/cmd/docs"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
	"github.com/SscSPs/workspace_dashboard/internal/platform/config"
	"github.com/SscSPs/workspace_dashboard/internal/utils"
)

// RouteDeps carries the optional collaborators of the router.
type RouteDeps struct {
	// Analytics may be nil or uninitialized; events are then dropped.
	Analytics *utils.AnalyticsClient
	// AskLimiter, when set, throttles the AI assistant endpoint.
	AskLimiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Register public authentication routes
	registerAuthRoutes(r, services.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	auth := middleware.AuthMiddleware(middleware.AuthOptions{
		CookieName: cfg.AccessTokenCookieName,
		Secret:     cfg.AccessTokenSecret,
		Verifier:   service.Auth,
		EntryURL:   cfg.AuthEntryURL,
	})
	v1 := r.Group("/api/v1", auth, middleware.RequireSafePathParams())
	if deps.Analytics != nil {
		v1.Use(middleware.Analytics(deps.Analytics))
	}

	var askMiddleware []gin.HandlerFunc
	if deps.AskLimiter != nil {
		askMiddleware = append(askMiddleware, middleware.RateLimit(deps.AskLimiter))
	}

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, service.Auth)
	registerSessionRoutes(v1, service.Workspace)
	registerInvitationRoutes(v1, service.Workspace)

	workspace := registerWorkspaceRoutes(v1, service.Workspace)
	registerMemberRoutes(workspace, service.Workspace)
	registerTableRoutes(workspace, service.Table)
	registerContentRoutes(workspace, service.Content, askMiddleware...)
	registerReportingRoutes(workspace, service.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
