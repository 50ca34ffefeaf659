package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/middleware"
	"github.com/guttosm/count-service/internal/printer"
	"github.com/guttosm/count-service/internal/report"
	"github.com/guttosm/count-service/internal/service"
)

// defaultLabelTimeout bounds a background print job.
const defaultLabelTimeout = 10 * time.Second

const timeLayout = time.RFC3339

// ConnectivityStatus reports the last known state of the ERP link.
type ConnectivityStatus interface {
	Online() bool
	CheckedAt() time.Time
}

// HandlerConfig holds the collaborators of the API handlers.
// Tokens, Activity, Recorder and Connectivity are optional.
type HandlerConfig struct {
	Registry     *service.EngineRegistry
	Sync         service.SyncService
	Renderer     report.Renderer
	Labels       printer.Emitter
	Connectivity ConnectivityStatus
	Tokens       service.DeviceTokenService
	Activity     service.ActivityService
	Recorder     service.ActivityRecorder
	LabelTimeout time.Duration
	Now          func() time.Time
}

// Handler provides HTTP handlers for the counting API.
type Handler struct {
	registry     *service.EngineRegistry
	sync         service.SyncService
	renderer     report.Renderer
	labels       printer.Emitter
	connectivity ConnectivityStatus
	tokens       service.DeviceTokenService
	activity     service.ActivityService
	recorder     service.ActivityRecorder
	labelTimeout time.Duration
	now          func() time.Time
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Renderer == nil {
		cfg.Renderer = report.NewPDFRenderer()
	}
	if cfg.Labels == nil {
		cfg.Labels = printer.LogEmitter{}
	}
	if cfg.LabelTimeout <= 0 {
		cfg.LabelTimeout = defaultLabelTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Handler{
		registry:     cfg.Registry,
		sync:         cfg.Sync,
		renderer:     cfg.Renderer,
		labels:       cfg.Labels,
		connectivity: cfg.Connectivity,
		tokens:       cfg.Tokens,
		activity:     cfg.Activity,
		recorder:     cfg.Recorder,
		labelTimeout: cfg.LabelTimeout,
		now:          cfg.Now,
	}
}

// engine returns the tally engine of the requesting device, writing the error response on failure.
func (h *Handler) engine(c *gin.Context) (*service.TallyEngine, bool) {
	engine, err := h.registry.Get(c.Request.Context(), middleware.GetDeviceID(c))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return engine, true
}
