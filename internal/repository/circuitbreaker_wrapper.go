package repository

import (
	"context"
	"errors"

	"github.com/guttosm/count-service/internal/circuitbreaker"
	"github.com/guttosm/count-service/internal/domain/model"
)

// SessionStoreWithCircuitBreaker wraps any SessionStore with circuit breaker protection.
// Unlike the activity wrapper it never swallows ErrCircuitOpen: a session write that
// did not happen must fail the mutation.
type SessionStoreWithCircuitBreaker struct {
	store          SessionStore
	circuitBreaker *circuitbreaker.CircuitBreaker
}

var _ SessionStore = (*SessionStoreWithCircuitBreaker)(nil)

// NewSessionStoreWithCircuitBreaker creates a new store wrapper with circuit breaker.
func NewSessionStoreWithCircuitBreaker(store SessionStore, cb *circuitbreaker.CircuitBreaker) *SessionStoreWithCircuitBreaker {
	return &SessionStoreWithCircuitBreaker{
		store:          store,
		circuitBreaker: cb,
	}
}

// Load returns the saved session of a device with circuit breaker protection.
func (s *SessionStoreWithCircuitBreaker) Load(ctx context.Context, deviceID string) (*model.SessionState, error) {
	return circuitbreaker.Call(ctx, s.circuitBreaker, func() (*model.SessionState, error) {
		return s.store.Load(ctx, deviceID)
	})
}

// Save writes the session of a device with circuit breaker protection.
func (s *SessionStoreWithCircuitBreaker) Save(ctx context.Context, deviceID string, state model.SessionState) error {
	return s.circuitBreaker.Execute(ctx, func() error {
		return s.store.Save(ctx, deviceID, state)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (s *SessionStoreWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return s.circuitBreaker
}

// ActivityRepositoryWithCircuitBreaker wraps an activity repository with circuit breaker protection.
type ActivityRepositoryWithCircuitBreaker struct {
	repo           ActivityRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewActivityRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewActivityRepositoryWithCircuitBreaker(repo ActivityRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ActivityRepositoryWithCircuitBreaker {
	return &ActivityRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores one entry. An open circuit drops the entry: the audit trail is best effort.
func (r *ActivityRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.ActivityEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores entries in bulk, dropping them while the circuit is open.
func (r *ActivityRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.ActivityEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves entries with circuit breaker protection.
func (r *ActivityRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.ActivityQueryOptions) ([]*model.ActivityEntry, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]*model.ActivityEntry, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the number of matching entries with circuit breaker protection.
func (r *ActivityRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.ActivityQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ActivityRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
