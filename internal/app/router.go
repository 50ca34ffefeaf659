// Package app provides router configuration.
package app

import (
	"context"

	"github.com/guttosm/count-service/config"
	"github.com/guttosm/count-service/internal/http"
	"github.com/guttosm/count-service/internal/middleware"
	"github.com/guttosm/count-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
// ctx bounds background work of the router, such as the idempotency sweeper.
func InitializeRouter(
	ctx context.Context,
	cfg config.Config,
	services *ServiceComponents,
	store *StoreComponents,
	db *DatabaseComponents,
	tokens service.DeviceTokenService,
) *RouterComponents {
	var activity service.ActivityService
	if db != nil {
		activity = db.ActivityService
	}

	var recorder service.ActivityRecorder
	if services.Recorder != nil {
		recorder = services.Recorder
	}

	handler := http.NewHandler(http.HandlerConfig{
		Registry:     services.Registry,
		Sync:         services.Sync,
		Labels:       services.Labels,
		Connectivity: services.Monitor,
		Tokens:       tokens,
		Activity:     activity,
		Recorder:     recorder,
		LabelTimeout: cfg.Printer.Timeout,
	})

	healthHandler := http.NewHealthHandler()
	healthHandler.SetConnectivity(services.Monitor)
	healthHandler.RegisterCircuitBreaker("erp", services.ERPBreaker, false)
	if store.Ping != nil {
		healthHandler.RegisterChecker("session_store", http.HealthCheckFunc(store.Ping))
	}
	healthHandler.RegisterCircuitBreaker("session_store", store.CircuitBreaker, true)
	if db != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_activity", db.ActivityCircuitBreaker, false)
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config: http.RouterConfig{
			CORSOrigins:    cfg.Server.CORSOrigins,
			Idempotency:    middleware.NewIdempotencyConfig(ctx, cfg.Server.IdempotencyTTL),
			Tokens:         tokens,
			EnableActivity: activity != nil,
			SwaggerUser:    cfg.Server.SwaggerUser,
			SwaggerPass:    cfg.Server.SwaggerPass,
		},
	}
}
