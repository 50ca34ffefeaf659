package dto

// DeviceClaims identifies the device and operator a token was issued to.
type DeviceClaims struct {
	DeviceID   string `json:"device_id"`
	OperatorID string `json:"operator_id"`
}

// DeviceToken is returned on login when device authentication is enabled.
type DeviceToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}
