package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/i18n"
	"github.com/guttosm/count-service/internal/service"
)

const (
	// DeviceIDHeader names the scanner when device tokens are not in use.
	DeviceIDHeader = "X-Device-ID"
	// DefaultDeviceID is used when a request names no device.
	DefaultDeviceID = "default"

	deviceIDKey   = "device_id"
	operatorIDKey = "operator_id"
)

// DeviceIdentity takes the device ID from the X-Device-ID header.
func DeviceIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := strings.TrimSpace(c.GetHeader(DeviceIDHeader))
		if deviceID == "" {
			deviceID = DefaultDeviceID
		}
		c.Set(deviceIDKey, deviceID)
		c.Next()
	}
}

// DeviceAuth requires a valid device token and replaces the header identity
// with the device and operator the token was issued to.
func DeviceAuth(tokens service.DeviceTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, failKey := BearerClaims(c, tokens)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}

		c.Set(deviceIDKey, claims.DeviceID)
		c.Set(operatorIDKey, claims.OperatorID)
		c.Next()
	}
}

// BearerClaims validates the bearer token of the request. On failure it
// returns the i18n key describing why.
func BearerClaims(c *gin.Context, tokens service.DeviceTokenService) (*dto.DeviceClaims, string) {
	tokenString, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		return nil, i18n.ErrKeyTokenRequired
	}
	claims, err := tokens.Validate(tokenString)
	if err != nil {
		return nil, i18n.ErrKeyInvalidToken
	}
	return claims, ""
}

// GetDeviceID returns the device the request acts on, or "" before identification.
func GetDeviceID(c *gin.Context) string {
	return c.GetString(deviceIDKey)
}

// GetOperatorID returns the operator from the device token, if any.
func GetOperatorID(c *gin.Context) string {
	return c.GetString(operatorIDKey)
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

func abortUnauthorized(c *gin.Context, key string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, i18n.T(c, key)).WithRequestID(GetRequestID(c)))
}
