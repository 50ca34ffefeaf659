package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/i18n"
	"github.com/guttosm/count-service/internal/service"
)

// GetTally lists the counted rows, most recent first.
func (h *Handler) GetTally(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	state := engine.Snapshot()
	NewResponseBuilder(c).SuccessOK(dto.TallyResponse{
		Items:   state.Tally,
		Summary: service.Summarize(state.Tally),
	})
}

// GetSummary returns the distinct SKU count and total units.
func (h *Handler) GetSummary(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	NewResponseBuilder(c).SuccessOK(engine.Summary())
}

// EditQuantity overwrites the quantity of one row. A quantity below 1 changes nothing.
func (h *Handler) EditQuantity(c *gin.Context) {
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	req, err := BuildRequest[dto.EditQuantityRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}

	engine, ok := h.engine(c)
	if !ok {
		return
	}
	_, err = engine.EditQuantity(c.Request.Context(), index, req.Quantity)
	h.writeTally(c, engine, err, i18n.SuccessKeyQuantityUpdated)
}

// DeleteRow removes one row. Without confirm=true nothing is removed.
func (h *Handler) DeleteRow(c *gin.Context) {
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	engine, ok := h.engine(c)
	if !ok {
		return
	}
	_, err := engine.DeleteRow(c.Request.Context(), index, confirmed)
	h.writeTally(c, engine, err, i18n.SuccessKeyRowDeleted)
}

func (h *Handler) writeTally(c *gin.Context, engine *service.TallyEngine, err error, successKey string) {
	cancelled := errors.Is(err, service.ErrCancelled)
	if err != nil && !cancelled {
		writeError(c, err)
		return
	}

	state := engine.Snapshot()
	resp := dto.TallyResponse{
		Items:     state.Tally,
		Summary:   service.Summarize(state.Tally),
		Cancelled: cancelled,
	}
	if cancelled {
		successKey = i18n.SuccessKeyScanCancelled
	}
	NewResponseBuilder(c).SuccessWithMessage(http.StatusOK, successKey, resp)
}

func rowIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		NewResponseBuilder(c).ErrorWithDetails(http.StatusBadRequest, i18n.T(c, i18n.ErrKeyInvalidRequest),
			map[string]string{"field": "index", "reason": "must be an integer"}, err)
		return 0, false
	}
	return index, true
}
