package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/circuitbreaker"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/guttosm/count-service/internal/i18n"
	"github.com/guttosm/count-service/internal/service"
)

var loginFields = map[string]bool{
	"operator_id":    true,
	"warehouse_code": true,
	"location_code":  true,
}

// writeError maps a service error onto a status code and a translated message.
func writeError(c *gin.Context, err error) {
	rb := NewResponseBuilder(c)

	var (
		validationErr *service.ValidationError
		rangeErr      *service.IndexOutOfRangeError
		transportErr  *service.SyncTransportError
	)

	switch {
	case errors.Is(err, service.ErrEmptyCode):
		rb.Error(http.StatusBadRequest, i18n.ErrKeyEmptyCode, err)
	case errors.Is(err, service.ErrNoActiveSession):
		rb.Error(http.StatusUnprocessableEntity, i18n.ErrKeyNoActiveSession, err)
	case errors.Is(err, service.ErrQuantityTooLarge):
		rb.ErrorWithDetails(http.StatusBadRequest, i18n.T(c, i18n.ErrKeyQuantityTooLarge),
			map[string]string{"field": "quantity", "max": strconv.Itoa(model.MaxQuantity)}, err)
	case errors.As(err, &validationErr):
		key := i18n.ErrKeyInvalidRequest
		if loginFields[validationErr.Field] {
			key = i18n.ErrKeyLoginFields
		}
		rb.ErrorWithDetails(http.StatusBadRequest, i18n.T(c, key),
			map[string]string{"field": validationErr.Field, "reason": validationErr.Reason}, err)
	case errors.As(err, &rangeErr):
		rb.Error(http.StatusNotFound, i18n.ErrKeyIndexOutOfRange, err)
	case errors.Is(err, service.ErrStaleScan):
		rb.Error(http.StatusConflict, i18n.ErrKeyStaleScan, err)
	case errors.Is(err, service.ErrEmptySync):
		rb.Error(http.StatusUnprocessableEntity, i18n.ErrKeyEmptySync, err)
	case errors.Is(err, service.ErrOffline):
		rb.Error(http.StatusServiceUnavailable, i18n.ErrKeyOffline, err)
	case errors.As(err, &transportErr):
		writeTransportError(c, rb, transportErr)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		rb.Error(http.StatusServiceUnavailable, i18n.ErrKeyStoreFailure, err)
	default:
		rb.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func writeTransportError(c *gin.Context, rb *ResponseBuilder, err *service.SyncTransportError) {
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		rb.Error(http.StatusServiceUnavailable, i18n.ErrKeyERPUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		rb.ErrorWithMessage(http.StatusGatewayTimeout, i18n.T(c, i18n.ErrKeySyncFailed)+": "+err.Message, err)
	default:
		rb.ErrorWithMessage(http.StatusBadGateway, i18n.T(c, i18n.ErrKeySyncFailed)+": "+err.Message, err)
	}
}

// writeRequestError answers a body that could not be bound or failed its own checks.
func writeRequestError(c *gin.Context, err error) {
	rb := NewResponseBuilder(c)

	var validationErr *dto.ValidationError
	if !errors.As(err, &validationErr) {
		rb.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if validationErr.Field == "code" {
		rb.Error(http.StatusBadRequest, i18n.ErrKeyEmptyCode, err)
		return
	}
	rb.ErrorWithDetails(http.StatusBadRequest, i18n.T(c, i18n.ErrKeyInvalidRequest),
		map[string]string{"field": validationErr.Field, "reason": validationErr.Message}, err)
}
