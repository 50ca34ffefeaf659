package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/guttosm/count-service/internal/i18n"
	"github.com/guttosm/count-service/internal/metrics"
	"github.com/guttosm/count-service/internal/middleware"
	"github.com/guttosm/count-service/internal/printer"
	"github.com/rs/zerolog/log"
)

// PrintLabel queues a barcode label for the warehouse printer and answers
// right away. Printer failures are logged and audited, never returned.
func (h *Handler) PrintLabel(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.LabelRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}

	sku := model.NormalizeSKU(req.SKU)
	command := printer.ZPLCommand(sku)

	// the request context ends with the response
	cc := c.Copy()
	go h.emitLabel(cc, sku, command)

	NewResponseBuilder(c).SuccessWithMessage(http.StatusAccepted, i18n.SuccessKeyLabelQueued,
		dto.LabelResponse{SKU: sku, Command: command, Queued: true})
}

func (h *Handler) emitLabel(c *gin.Context, sku, command string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.labelTimeout)
	defer cancel()

	fields := map[string]interface{}{"command": command}
	if err := h.labels.Emit(ctx, command); err != nil {
		metrics.RecordLabel("failed")
		log.Warn().
			Err(err).
			Str("component", "printer").
			Str("device_id", middleware.GetDeviceID(c)).
			Str("sku", sku).
			Msg("Label print failed")
		middleware.AuditLogError(h.recorder, c, model.ActionLabel, sku, err, fields)
		return
	}
	metrics.RecordLabel("sent")
	middleware.AuditLog(h.recorder, c, model.ActionLabel, sku, fields)
}
