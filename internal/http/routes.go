package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup defines routes that don't require authentication.
type PublicRouteGroup interface {
	// RegisterPublicRoutes registers public routes to the given router group.
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes that require a device token when authentication is on.
type ProtectedRouteGroup interface {
	// RegisterProtectedRoutes registers protected routes to the given router group.
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// CountRoutes registers the counting API.
type CountRoutes struct {
	handler *Handler
}

var (
	_ PublicRouteGroup    = (*CountRoutes)(nil)
	_ ProtectedRouteGroup = (*CountRoutes)(nil)
)

// NewCountRoutes creates the route group of the counting API.
func NewCountRoutes(handler *Handler) *CountRoutes {
	return &CountRoutes{handler: handler}
}

// RegisterPublicRoutes registers login and the connectivity status.
func (r *CountRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/session/login", r.handler.Login)
	rg.GET("/connectivity", r.handler.GetConnectivity)
}

// RegisterProtectedRoutes registers everything that acts on a device session.
func (r *CountRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	h := r.handler

	rg.GET("/session", h.GetSession)

	rg.POST("/scans/lookup", h.Lookup)
	rg.POST("/scans", h.RecordScan)

	rg.GET("/tally", h.GetTally)
	rg.PUT("/tally/:index", h.EditQuantity)
	rg.DELETE("/tally/:index", h.DeleteRow)
	rg.GET("/summary", h.GetSummary)

	rg.GET("/report", h.GetReport)
	rg.GET("/report.pdf", h.GetReportPDF)

	rg.GET("/sync/payload", h.GetSyncPayload)
	rg.POST("/sync", h.Synchronize)

	rg.POST("/labels", h.PrintLabel)

	if cfg.EnableActivity && h.activity != nil {
		rg.GET("/activity", h.GetActivity)
	}
}
