package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/i18n"
	"github.com/rs/zerolog/log"
)

// ErrorHandler logs errors attached with c.Error and answers for handlers
// that did not write a response themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)
		log.Error().
			Str("request_id", requestID).
			Str("device_id", GetDeviceID(c)).
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}
		if err.IsType(gin.ErrorTypeBind) {
			c.JSON(http.StatusBadRequest,
				dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyInvalidRequestBody)).WithRequestID(requestID))
			return
		}
		c.JSON(http.StatusInternalServerError,
			dto.NewError(dto.ErrCodeInternal, i18n.T(c, i18n.ErrKeyInternalError)).WithRequestID(requestID))
	}
}
