package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/guttosm/count-service/internal/repository"
)

// EngineRegistry hands out one TallyEngine per device.
// Engines are restored from the session store on first use and cached afterwards.
type EngineRegistry struct {
	mu      sync.Mutex
	engines map[string]*TallyEngine
	opts    EngineOptions
}

// NewEngineRegistry creates an empty registry.
func NewEngineRegistry(opts EngineOptions) *EngineRegistry {
	if opts.Store == nil {
		opts.Store = repository.NewMemorySessionStore()
	}
	return &EngineRegistry{
		engines: make(map[string]*TallyEngine),
		opts:    opts,
	}
}

// Get returns the engine of deviceID, loading its saved session the first time.
func (r *EngineRegistry) Get(ctx context.Context, deviceID string) (*TallyEngine, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, &ValidationError{Field: "device_id", Reason: "must not be empty"}
	}

	r.mu.Lock()
	e, ok := r.engines[deviceID]
	r.mu.Unlock()
	if ok {
		return e, nil
	}

	// load without the registry lock so a slow store only delays this device
	saved, err := r.opts.Store.Load(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", deviceID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.engines[deviceID]; ok {
		return e, nil
	}
	engine := NewTallyEngine(deviceID, saved, r.opts)
	r.engines[deviceID] = engine
	return engine, nil
}

// Len returns the number of engines held in memory.
func (r *EngineRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}
