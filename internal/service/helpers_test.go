package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/guttosm/count-service/internal/repository"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 4, 14, 9, 30, 15, 0, time.UTC)

func clock() time.Time { return fixedNow }

// recorderSpy collects activity entries synchronously.
type recorderSpy struct {
	mu      sync.Mutex
	entries []*model.ActivityEntry
}

func (r *recorderSpy) Record(entry *model.ActivityEntry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return true
}

func (r *recorderSpy) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}

func newEngine(t *testing.T, store repository.SessionStore, activity ActivityRecorder) *TallyEngine {
	t.Helper()
	if store == nil {
		store = repository.NewMemorySessionStore()
	}
	return NewTallyEngine("dev-1", nil, EngineOptions{Store: store, Activity: activity, Now: clock})
}

func newActiveEngine(t *testing.T) *TallyEngine {
	t.Helper()
	e := newEngine(t, nil, nil)
	require.NoError(t, e.Login(context.Background(), "1234", "01", "A-01"))
	return e
}

func scan(t *testing.T, e *TallyEngine, code string, qty int) model.ScanOutcome {
	t.Helper()
	out, err := e.RecordScan(context.Background(), code, StaticDuplicate(model.ResolutionSum), StaticQuantity(qty))
	require.NoError(t, err)
	return out
}
