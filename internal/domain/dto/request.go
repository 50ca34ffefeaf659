// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model; binding tags carry the
// shape checks, Validate carries the rest.
package dto

import "strings"

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// LoginRequest opens a counting session on a device.
type LoginRequest struct {
	OperatorID    string `json:"operator_id"`
	WarehouseCode string `json:"warehouse_code"`
	LocationCode  string `json:"location_code"`
}

// ScanLookupRequest asks whether a code is already in the tally.
type ScanLookupRequest struct {
	Code string `json:"code"`
}

// ScanRequest records a scanned code.
//
// Resolution is only read when the SKU already exists in the tally.
// A non-positive Quantity cancels the scan.
type ScanRequest struct {
	Code       string `json:"code"`
	Resolution string `json:"resolution,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Validate performs custom validation on the scan request.
func (r *ScanRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ValidationError{Field: "code", Message: "must not be empty"}
	}
	return nil
}

// EditQuantityRequest replaces the quantity of a tally row.
type EditQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// LabelRequest asks for a barcode label to be printed.
type LabelRequest struct {
	SKU string `json:"sku"`
}

// Validate performs custom validation on the label request.
func (r *LabelRequest) Validate() error {
	if strings.TrimSpace(r.SKU) == "" {
		return &ValidationError{Field: "sku", Message: "must not be empty"}
	}
	return nil
}
