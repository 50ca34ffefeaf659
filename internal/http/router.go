package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/docs"
	"github.com/guttosm/count-service/internal/metrics"
	"github.com/guttosm/count-service/internal/middleware"
	"github.com/guttosm/count-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	CORSOrigins []string
	// Idempotency replays retried writes; a disabled config lets every request through.
	Idempotency middleware.IdempotencyConfig
	// Tokens enables device authentication when set.
	Tokens service.DeviceTokenService
	// EnableActivity registers the audit trail endpoint.
	EnableActivity bool
	// SwaggerUser and SwaggerPass put the API docs behind basic auth when both are set.
	SwaggerUser string
	SwaggerPass string
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{}
}

// NewRouter creates and configures the Gin router for the count service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	if handler == nil {
		return router
	}

	routes := NewCountRoutes(handler)
	idempotency := middleware.Idempotency(cfg.Idempotency)

	public := api.Group("", idempotency)
	routes.RegisterPublicRoutes(public)

	protected := api.Group("")
	if cfg.Tokens != nil {
		protected.Use(middleware.DeviceAuth(cfg.Tokens))
	}
	// after DeviceAuth so the replay key uses the authenticated device
	protected.Use(idempotency)
	routes.RegisterProtectedRoutes(protected, &cfg)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.DeviceIdentity(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)
}

// registerInfrastructureRoutes registers health, metrics and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docsGroup := router.Group("")
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		docsGroup.Use(gin.BasicAuth(gin.Accounts{cfg.SwaggerUser: cfg.SwaggerPass}))
	}
	docsGroup.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", docs.OpenAPI())
	})
	docsGroup.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))
}
