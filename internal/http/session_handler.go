package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/i18n"
	"github.com/guttosm/count-service/internal/middleware"
	"github.com/guttosm/count-service/internal/service"
	"github.com/rs/zerolog/log"
)

// Login opens the counting session of the requesting device.
// When device tokens are enabled the response carries a token bound to the device and operator.
func (h *Handler) Login(c *gin.Context) {
	req, err := BuildRequest[dto.LoginRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}

	engine, ok := h.engine(c)
	if !ok {
		return
	}
	if !h.mayTakeOver(c, engine) {
		return
	}
	if err := engine.Login(c.Request.Context(), req.OperatorID, req.WarehouseCode, req.LocationCode); err != nil {
		writeError(c, err)
		return
	}

	state := engine.Snapshot()
	resp := dto.NewSessionResponse(engine.DeviceID(), state, engine.Summary())

	if h.tokens != nil {
		token, err := h.tokens.Issue(engine.DeviceID(), state.OperatorID)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.Token = token
	}

	log.Info().
		Str("component", "session").
		Str("device_id", engine.DeviceID()).
		Str("operator_id", state.OperatorID).
		Str("warehouse_code", state.WarehouseCode).
		Str("location_code", state.LocationCode).
		Msg("Session started")

	NewResponseBuilder(c).SuccessWithMessage(http.StatusOK, i18n.SuccessKeySessionStarted, resp)
}

// mayTakeOver guards re-login on a device whose session is open. With device
// tokens on, only a token issued to that device may replace its operator.
func (h *Handler) mayTakeOver(c *gin.Context, engine *service.TallyEngine) bool {
	if h.tokens == nil || !engine.Snapshot().Active() {
		return true
	}

	claims, failKey := middleware.BearerClaims(c, h.tokens)
	if failKey == "" && claims.DeviceID == engine.DeviceID() {
		return true
	}
	if failKey == "" || failKey == i18n.ErrKeyTokenRequired {
		failKey = i18n.ErrKeyDeviceInUse
	}

	log.Warn().
		Str("component", "session").
		Str("device_id", engine.DeviceID()).
		Str("reason", failKey).
		Msg("Rejected login on a device with an open session")
	NewResponseBuilder(c).Error(http.StatusUnauthorized, failKey, nil)
	return false
}

// GetSession returns the session snapshot of the requesting device.
func (h *Handler) GetSession(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	resp := dto.NewSessionResponse(engine.DeviceID(), engine.Snapshot(), engine.Summary())
	NewResponseBuilder(c).SuccessOK(resp)
}

// GetConnectivity reports whether the ERP is currently reachable.
func (h *Handler) GetConnectivity(c *gin.Context) {
	resp := dto.ConnectivityResponse{Online: true}
	if h.connectivity != nil {
		resp.Online = h.connectivity.Online()
		if at := h.connectivity.CheckedAt(); !at.IsZero() {
			resp.CheckedAt = at.UTC().Format(timeLayout)
		}
	}
	NewResponseBuilder(c).SuccessOK(resp)
}

// deviceID is a shorthand used by handlers that log.
func deviceID(c *gin.Context) string {
	return middleware.GetDeviceID(c)
}
