package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/count-service/internal/circuitbreaker"
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/guttosm/count-service/internal/metrics"
	"github.com/rs/zerolog/log"
)

// SyncTransport delivers a counting document to the ERP.
type SyncTransport interface {
	Send(ctx context.Context, payload model.SyncPayload) (model.SyncReceipt, error)
}

// ConnectivityChecker reports whether the ERP is believed reachable.
type ConnectivityChecker interface {
	Online() bool
}

// SyncResult describes a completed synchronization.
type SyncResult struct {
	Payload model.SyncPayload
	Receipt model.SyncReceipt
	Summary model.Summary
}

// SyncService synchronizes device tallies with the ERP.
type SyncService interface {
	// Preview returns the document Synchronize would send, without sending it.
	Preview(ctx context.Context, deviceID string) (model.SyncPayload, error)
	// Synchronize sends the tally and closes the session once the ERP accepted it.
	Synchronize(ctx context.Context, deviceID string) (SyncResult, error)
}

// SyncServiceImpl implements SyncService.
type SyncServiceImpl struct {
	registry     *EngineRegistry
	transport    SyncTransport
	connectivity ConnectivityChecker
	breaker      *circuitbreaker.CircuitBreaker
	activity     ActivityRecorder
	now          func() time.Time
}

// SyncServiceConfig holds the collaborators of the sync service.
// Connectivity, Breaker and Activity are optional.
type SyncServiceConfig struct {
	Registry     *EngineRegistry
	Transport    SyncTransport
	Connectivity ConnectivityChecker
	Breaker      *circuitbreaker.CircuitBreaker
	Activity     ActivityRecorder
	Now          func() time.Time
}

// NewSyncService creates a new sync service.
func NewSyncService(cfg SyncServiceConfig) SyncService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SyncServiceImpl{
		registry:     cfg.Registry,
		transport:    cfg.Transport,
		connectivity: cfg.Connectivity,
		breaker:      cfg.Breaker,
		activity:     cfg.Activity,
		now:          cfg.Now,
	}
}

// Preview builds the payload from the current session.
func (s *SyncServiceImpl) Preview(ctx context.Context, deviceID string) (model.SyncPayload, error) {
	engine, err := s.registry.Get(ctx, deviceID)
	if err != nil {
		return model.SyncPayload{}, err
	}
	return BuildSyncPayload(engine.Snapshot(), s.now())
}

// Synchronize holds the device lock for the whole call, so no scan lands between
// building the payload and clearing the tally.
func (s *SyncServiceImpl) Synchronize(ctx context.Context, deviceID string) (SyncResult, error) {
	start := time.Now()

	if s.connectivity != nil && !s.connectivity.Online() {
		metrics.RecordSync(time.Since(start), "offline")
		return SyncResult{}, ErrOffline
	}

	engine, err := s.registry.Get(ctx, deviceID)
	if err != nil {
		return SyncResult{}, err
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()

	state := engine.state.Clone()
	payload, err := BuildSyncPayload(state, s.now())
	if err != nil {
		metrics.RecordSync(time.Since(start), "empty")
		return SyncResult{}, err
	}

	receipt, err := s.send(ctx, payload)
	if err != nil {
		metrics.RecordSync(time.Since(start), "failed")
		s.audit(ctx, deviceID, state, model.ActionSyncFailed, len(payload.Lines), err)
		return SyncResult{}, transportError(err)
	}

	if err := engine.closeLocked(ctx); err != nil {
		// The ERP already holds the document; retrying would post it twice.
		log.Error().
			Err(err).
			Str("component", "sync").
			Str("device_id", deviceID).
			Int("document_entry", receipt.DocumentEntry).
			Msg("Counting document accepted but session could not be closed")
		metrics.RecordSync(time.Since(start), "close_failed")
		return SyncResult{}, err
	}

	metrics.RecordSync(time.Since(start), "success")
	s.audit(ctx, deviceID, state, model.ActionSync, len(payload.Lines), nil)
	log.Info().
		Str("component", "sync").
		Str("device_id", deviceID).
		Int("lines", len(payload.Lines)).
		Int("document_entry", receipt.DocumentEntry).
		Msg("Tally synchronized")

	return SyncResult{
		Payload: payload,
		Receipt: receipt,
		Summary: Summarize(state.Tally),
	}, nil
}

func (s *SyncServiceImpl) send(ctx context.Context, payload model.SyncPayload) (model.SyncReceipt, error) {
	if s.breaker == nil {
		return s.transport.Send(ctx, payload)
	}
	return circuitbreaker.Call(ctx, s.breaker, func() (model.SyncReceipt, error) {
		return s.transport.Send(ctx, payload)
	})
}

func transportError(err error) *SyncTransportError {
	msg := err.Error()
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		msg = "erp temporarily unavailable, try again later"
	case errors.Is(err, context.DeadlineExceeded):
		msg = "erp did not answer in time"
	}
	return &SyncTransportError{Message: msg, Err: err}
}

func (s *SyncServiceImpl) audit(ctx context.Context, deviceID string, state model.SessionState, action string, lines int, err error) {
	if s.activity == nil {
		return
	}
	entry := &model.ActivityEntry{
		Timestamp:  s.now().UTC(),
		DeviceID:   deviceID,
		OperatorID: state.OperatorID,
		Action:     action,
		Qty:        Summarize(state.Tally).TotalUnits,
		RequestID:  RequestIDFromContext(ctx),
	}
	entry.WithField("lines", lines)
	if err != nil {
		entry.Error = err.Error()
	}
	s.activity.Record(entry)
}
