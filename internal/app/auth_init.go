// Package app provides device authentication initialization.
package app

import (
	"errors"

	"github.com/guttosm/count-service/config"
	"github.com/guttosm/count-service/internal/service"
	"github.com/rs/zerolog/log"
)

// insecureDefaultSecret is the JWT_SECRET_KEY fallback of config.Load.
const insecureDefaultSecret = "your-secret-key-change-in-production"

// minSecretLength is the shortest HMAC secret accepted for device tokens.
const minSecretLength = 16

// InitializeDeviceTokens returns the token service, or nil when device
// authentication is disabled and devices identify themselves by header.
func InitializeDeviceTokens(cfg config.AuthConfig) (service.DeviceTokenService, error) {
	if !cfg.Enabled {
		log.Info().Msg("Device authentication disabled - devices are identified by X-Device-ID")
		return nil, nil
	}
	if len(cfg.JWTSecretKey) < minSecretLength {
		return nil, errors.New("JWT_SECRET_KEY must be at least 16 characters when AUTH_ENABLED=true")
	}
	if cfg.JWTSecretKey == insecureDefaultSecret {
		log.Warn().Msg("JWT_SECRET_KEY is the built-in default - set a real secret in production")
	}
	return service.NewDeviceTokenService(cfg.JWTSecretKey, cfg.TokenTTL), nil
}
