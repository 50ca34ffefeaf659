package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guttosm/count-service/internal/domain/dto"
)

// ErrInvalidToken is returned for a malformed, expired or foreign device token.
var ErrInvalidToken = errors.New("invalid or expired token")

// DeviceTokenService issues and validates the tokens that bind requests to a device.
type DeviceTokenService interface {
	Issue(deviceID, operatorID string) (*dto.DeviceToken, error)
	Validate(tokenString string) (*dto.DeviceClaims, error)
}

type deviceClaims struct {
	dto.DeviceClaims
	jwt.RegisteredClaims
}

// DeviceTokenServiceImpl implements DeviceTokenService with HS256 JWTs.
type DeviceTokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
	now       func() time.Time
}

// NewDeviceTokenService creates a new device token service.
func NewDeviceTokenService(secret string, ttl time.Duration) DeviceTokenService {
	return &DeviceTokenServiceImpl{
		secretKey: []byte(secret),
		ttl:       ttl,
		issuer:    "count-service",
		now:       time.Now,
	}
}

// Issue signs a token for deviceID.
func (s *DeviceTokenServiceImpl) Issue(deviceID, operatorID string) (*dto.DeviceToken, error) {
	if deviceID == "" {
		return nil, errors.New("device ID is empty, cannot create token")
	}

	now := s.now()
	claims := &deviceClaims{
		DeviceClaims: dto.DeviceClaims{DeviceID: deviceID, OperatorID: operatorID},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign device token: %w", err)
	}

	return &dto.DeviceToken{
		AccessToken: signed,
		ExpiresIn:   int64(s.ttl.Seconds()),
	}, nil
}

// Validate parses tokenString and returns its device claims.
func (s *DeviceTokenServiceImpl) Validate(tokenString string) (*dto.DeviceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &deviceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*deviceClaims)
	if !ok || !token.Valid || claims.DeviceID == "" {
		return nil, ErrInvalidToken
	}
	return &claims.DeviceClaims, nil
}
