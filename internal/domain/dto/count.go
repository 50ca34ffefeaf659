package dto

import "github.com/guttosm/count-service/internal/domain/model"

// SessionResponse is the session snapshot returned by session endpoints.
type SessionResponse struct {
	DeviceID      string        `json:"device_id"`
	Active        bool          `json:"active"`
	OperatorID    string        `json:"operator_id,omitempty"`
	WarehouseCode string        `json:"warehouse_code,omitempty"`
	LocationCode  string        `json:"location_code,omitempty"`
	Summary       model.Summary `json:"summary"`
	Token         *DeviceToken  `json:"token,omitempty"`
}

// NewSessionResponse builds a SessionResponse from a state snapshot.
func NewSessionResponse(deviceID string, state model.SessionState, summary model.Summary) SessionResponse {
	return SessionResponse{
		DeviceID:      deviceID,
		Active:        state.Active(),
		OperatorID:    state.OperatorID,
		WarehouseCode: state.WarehouseCode,
		LocationCode:  state.LocationCode,
		Summary:       summary,
	}
}

// ScanLookupResponse tells the client which prompt to show next.
type ScanLookupResponse struct {
	SKU        string `json:"sku"`
	Exists     bool   `json:"exists"`
	CurrentQty int    `json:"current_qty,omitempty"`
}

// ScanResponse is returned after a scan was handled.
type ScanResponse struct {
	Cancelled bool               `json:"cancelled"`
	Outcome   *model.ScanOutcome `json:"outcome,omitempty"`
	Summary   model.Summary      `json:"summary"`
}

// TallyResponse lists the tally rows with their totals.
type TallyResponse struct {
	Items     model.TallyList `json:"items"`
	Summary   model.Summary   `json:"summary"`
	Cancelled bool            `json:"cancelled,omitempty"`
}

// SyncResponse reports a completed synchronization.
type SyncResponse struct {
	Lines      int    `json:"lines"`
	TotalUnits int    `json:"total_units"`
	Reference  string `json:"reference,omitempty"`
}

// LabelResponse echoes the command sent to the printer.
type LabelResponse struct {
	SKU     string `json:"sku"`
	Command string `json:"command"`
	Queued  bool   `json:"queued"`
}

// ConnectivityResponse reports the current link status to the ERP.
type ConnectivityResponse struct {
	Online    bool   `json:"online"`
	CheckedAt string `json:"checked_at,omitempty"`
}
