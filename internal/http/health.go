package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/circuitbreaker"
)

// healthCheckTimeout bounds each dependency check of the readiness probe.
const healthCheckTimeout = 2 * time.Second

// HealthChecker defines the interface for health check operations.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a ping function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

type registeredBreaker struct {
	cb       *circuitbreaker.CircuitBreaker
	critical bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]registeredBreaker
	connectivity    ConnectivityStatus
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]registeredBreaker),
	}
}

// RegisterChecker adds a dependency whose failure makes the service not ready.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	if checker != nil {
		h.checkers[name] = checker
	}
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
// An open critical breaker makes the service not ready; others are only reported.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker, critical bool) {
	if cb != nil {
		h.circuitBreakers[name] = registeredBreaker{cb: cb, critical: critical}
	}
}

// SetConnectivity reports the ERP link status. Being offline never fails readiness:
// devices keep counting and synchronize later.
func (h *HealthHandler) SetConnectivity(status ConnectivityStatus) {
	h.connectivity = status
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness returns OK while the process is running.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness returns OK when every critical dependency is healthy.
func (h *HealthHandler) Readiness(c *gin.Context) {
	status := http.StatusOK
	checks := make(map[string]interface{})

	for name, checker := range h.checkers {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := checker.Check(ctx)
		cancel()
		if err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[name] = "ok"
		}
	}

	for name, b := range h.circuitBreakers {
		stats := b.cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if b.critical && !stats.IsHealthy {
			status = http.StatusServiceUnavailable
		}
	}

	if h.connectivity != nil {
		checks["erp"] = map[bool]string{true: "online", false: "offline"}[h.connectivity.Online()]
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	c.JSON(status, gin.H{
		"status": map[bool]string{true: "ok", false: "degraded"}[status == http.StatusOK],
		"checks": checks,
	})
}
