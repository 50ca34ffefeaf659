package repository

import (
	"context"
	"sync"

	"github.com/guttosm/count-service/internal/domain/model"
)

// MemorySessionStore keeps sessions in process memory.
// Sessions do not survive a restart.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.SessionState
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]model.SessionState)}
}

// Load returns a copy of the saved session of a device.
func (s *MemorySessionStore) Load(ctx context.Context, deviceID string) (*model.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[deviceID]
	if !ok {
		return nil, nil
	}
	cp := state.Clone()
	return &cp, nil
}

// Save stores a copy of the session of a device.
func (s *MemorySessionStore) Save(ctx context.Context, deviceID string, state model.SessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[deviceID] = state.Clone()
	return nil
}
