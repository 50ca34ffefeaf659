package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyConflict           = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired device token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a device token is required.
	ErrKeyTokenRequired = "error.token_required"

	ErrKeyEmptyCode          = "error.empty_code"
	ErrKeyNoActiveSession    = "error.no_active_session"
	ErrKeyLoginFields        = "error.login_fields"
	ErrKeyResolutionRequired = "error.resolution_required"
	ErrKeyIndexOutOfRange    = "error.index_out_of_range"
	ErrKeyStaleScan          = "error.stale_scan"
	ErrKeyOffline            = "error.offline"
	ErrKeyEmptySync          = "error.empty_sync"
	// ErrKeySyncFailed is followed by the ERP's own message.
	ErrKeySyncFailed     = "error.sync_failed"
	ErrKeyERPUnavailable = "error.erp_unavailable"
	ErrKeyStoreFailure   = "error.store_failure"

	// ErrKeyDeviceInUse asks for the token of a device that already has an operator.
	ErrKeyDeviceInUse      = "error.device_in_use"
	ErrKeyQuantityTooLarge = "error.quantity_too_large"
)

// Success message translation keys.
const (
	SuccessKeySessionStarted  = "success.session_started"
	SuccessKeyScanRecorded    = "success.scan_recorded"
	SuccessKeyScanCancelled   = "success.scan_cancelled"
	SuccessKeyQuantityUpdated = "success.quantity_updated"
	SuccessKeyRowDeleted      = "success.row_deleted"
	SuccessKeySynced          = "success.synced"
	SuccessKeyLabelQueued     = "success.label_queued"
)
