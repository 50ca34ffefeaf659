package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the kind shared by all input and precondition failures.
	ErrValidation = errors.New("validation failed")
	// ErrIndexOutOfRange is the kind of IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrCancelled means the operator declined a prompt or entered a non-positive quantity.
	// Nothing was changed.
	ErrCancelled = errors.New("cancelled")
	// ErrEmptySync is returned when there is nothing to synchronize.
	ErrEmptySync = errors.New("nothing to synchronize")
	// ErrOffline is returned when the ERP is known to be unreachable.
	ErrOffline = errors.New("erp is offline")
	// ErrStaleScan is returned when the tally changed between prompting and committing a scan.
	ErrStaleScan = errors.New("tally changed while the scan was pending")
)

// ValidationError reports a rejected field or precondition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Unwrap lets errors.Is(err, ErrValidation) match every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var (
	// ErrEmptyCode is returned for a scan that is blank after trimming.
	ErrEmptyCode = &ValidationError{Field: "code", Reason: "must not be empty"}
	// ErrNoActiveSession is returned when no operator is logged in on the device.
	ErrNoActiveSession = &ValidationError{Field: "session", Reason: "no active session"}
	// ErrQuantityTooLarge is returned when an entered quantity, or a row after summing, exceeds model.MaxQuantity.
	ErrQuantityTooLarge = &ValidationError{Field: "quantity", Reason: "must not exceed 999999999"}
)

// IndexOutOfRangeError reports a row index outside the tally.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}

// Unwrap lets errors.Is(err, ErrIndexOutOfRange) match.
func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// SyncTransportError wraps a failed delivery to the ERP.
// Message is safe to show to the operator.
type SyncTransportError struct {
	Message string
	Err     error
}

func (e *SyncTransportError) Error() string {
	return "sync failed: " + e.Message
}

func (e *SyncTransportError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether err is one of the domain errors a client can act on.
func IsRecoverable(err error) bool {
	var transportErr *SyncTransportError
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrCancelled) ||
		errors.Is(err, ErrEmptySync) ||
		errors.Is(err, ErrOffline) ||
		errors.Is(err, ErrStaleScan) ||
		errors.As(err, &transportErr)
}

// IsRejection reports whether err carries a transport error that says the ERP
// refused the document itself. Such failures must not count against the ERP's health.
func IsRejection(err error) bool {
	var r interface{ Rejected() bool }
	return errors.As(err, &r) && r.Rejected()
}
