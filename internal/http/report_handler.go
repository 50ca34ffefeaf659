package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/service"
	"github.com/rs/zerolog/log"
)

// GetReport returns the data of the printable count report.
func (h *Handler) GetReport(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	NewResponseBuilder(c).SuccessOK(service.BuildReport(engine.Snapshot(), h.now()))
}

// GetReportPDF renders the count report as a PDF attachment.
func (h *Handler) GetReportPDF(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}

	doc := service.BuildReport(engine.Snapshot(), h.now())
	body, filename, err := h.renderer.Render(doc)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Debug().
		Str("component", "report").
		Str("device_id", engine.DeviceID()).
		Int("rows", len(doc.Rows)).
		Int("bytes", len(body)).
		Msg("Report rendered")

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	c.Data(http.StatusOK, "application/pdf", body)
}
