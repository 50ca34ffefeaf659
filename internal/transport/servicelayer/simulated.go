package servicelayer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/rs/zerolog/log"
)

// SimulatedTransport accepts every document after a fixed delay.
// It stands in for the ERP in demos and on devices without a Service Layer.
type SimulatedTransport struct {
	Delay time.Duration
}

// Send waits for Delay and returns a random reference.
func (s SimulatedTransport) Send(ctx context.Context, payload model.SyncPayload) (model.SyncReceipt, error) {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return model.SyncReceipt{}, ctx.Err()
	case <-timer.C:
	}

	ref := uuid.NewString()
	log.Info().
		Str("component", "servicelayer").
		Str("reference", ref).
		Int("lines", len(payload.Lines)).
		Msg("Simulated inventory counting accepted")
	return model.SyncReceipt{Reference: ref}, nil
}

// Ping always succeeds.
func (s SimulatedTransport) Ping(context.Context) error {
	return nil
}
