package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/i18n"
)

// GetSyncPayload previews the counting document without sending it.
func (h *Handler) GetSyncPayload(c *gin.Context) {
	payload, err := h.sync.Preview(c.Request.Context(), deviceID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(payload)
}

// Synchronize sends the tally to the ERP and closes the session.
func (h *Handler) Synchronize(c *gin.Context) {
	result, err := h.sync.Synchronize(c.Request.Context(), deviceID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessWithMessage(http.StatusOK, i18n.SuccessKeySynced, dto.SyncResponse{
		Lines:      len(result.Payload.Lines),
		TotalUnits: result.Summary.TotalUnits,
		Reference:  result.Receipt.Reference,
	})
}
