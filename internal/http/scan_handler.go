package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/guttosm/count-service/internal/i18n"
	"github.com/guttosm/count-service/internal/metrics"
	"github.com/guttosm/count-service/internal/service"
)

// Lookup reports whether a scanned code is already counted, so the client
// knows whether to ask for a quantity or for a duplicate resolution first.
func (h *Handler) Lookup(c *gin.Context) {
	req, err := BuildRequest[dto.ScanLookupRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}

	engine, ok := h.engine(c)
	if !ok {
		return
	}
	item, exists, err := engine.Lookup(req.Code)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.ScanLookupResponse{SKU: item.SKU, Exists: exists}
	if exists {
		resp.CurrentQty = item.Qty
	}
	NewResponseBuilder(c).SuccessOK(resp)
}

// RecordScan commits a scan with the answers the operator already gave.
//
// A known SKU needs a resolution; without one nothing is changed and the
// response carries the current quantity so the client can ask. A quantity
// below 1 or a cancel resolution leaves the tally untouched.
func (h *Handler) RecordScan(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.ScanRequest](c)
	if err != nil {
		metrics.RecordScan("rejected")
		writeRequestError(c, err)
		return
	}

	engine, ok := h.engine(c)
	if !ok {
		return
	}

	var (
		needsResolution bool
		currentQty      int
		resolution      = model.ResolutionCancel
	)
	onDuplicate := func(_ context.Context, _ string, qty int) model.Resolution {
		currentQty = qty
		if strings.TrimSpace(req.Resolution) == "" {
			needsResolution = true
			return model.ResolutionCancel
		}
		resolution = model.ParseResolution(req.Resolution)
		return resolution
	}

	outcome, err := engine.RecordScan(c.Request.Context(), req.Code, onDuplicate, service.StaticQuantity(req.Quantity))
	rb := NewResponseBuilder(c)
	switch {
	case needsResolution:
		rb.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.T(c, i18n.ErrKeyResolutionRequired),
			map[string]string{
				"sku":         model.NormalizeSKU(req.Code),
				"current_qty": strconv.Itoa(currentQty),
			}, nil)
		return
	case errors.Is(err, service.ErrCancelled):
		metrics.RecordScan("cancelled")
		rb.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyScanCancelled,
			dto.ScanResponse{Cancelled: true, Summary: engine.Summary()})
		return
	case err != nil:
		metrics.RecordScan("rejected")
		writeError(c, err)
		return
	}

	resp := dto.ScanResponse{Outcome: &outcome, Summary: engine.Summary()}
	if outcome.Inserted {
		metrics.RecordScan("inserted")
		rb.SuccessWithMessage(http.StatusCreated, i18n.SuccessKeyScanRecorded, resp)
		return
	}
	if resolution == model.ResolutionSum {
		metrics.RecordScan("summed")
	} else {
		metrics.RecordScan("replaced")
	}
	rb.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyScanRecorded, resp)
}
