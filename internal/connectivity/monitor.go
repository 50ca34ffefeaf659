// Package connectivity tracks whether the ERP is reachable from this device.
package connectivity

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/count-service/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Monitor holds the last known ERP reachability and notifies subscribers on change.
type Monitor struct {
	online    atomic.Bool
	checkedAt atomic.Int64

	mu     sync.Mutex
	nextID int
	subs   map[int]chan bool
}

// NewMonitor returns a Monitor starting in the given state.
func NewMonitor(online bool) *Monitor {
	m := &Monitor{subs: make(map[int]chan bool)}
	m.online.Store(online)
	metrics.SetERPOnline(online)
	return m
}

// Online reports the last known state.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// CheckedAt is the time of the last Set, zero if never checked.
func (m *Monitor) CheckedAt() time.Time {
	nanos := m.checkedAt.Load()
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos).UTC()
}

// Set records a probe result. Subscribers only hear about transitions.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkedAt.Store(time.Now().UnixNano())
	metrics.SetERPOnline(online)

	if m.online.Swap(online) == online {
		return
	}

	log.Info().
		Str("component", "connectivity").
		Bool("online", online).
		Msg("ERP connectivity changed")

	for _, ch := range m.subs {
		// keep only the latest state for slow readers
		select {
		case <-ch:
		default:
		}
		ch <- online
	}
}

// Subscribe returns a channel of state changes and a func to stop listening.
func (m *Monitor) Subscribe() (<-chan bool, func()) {
	ch := make(chan bool, 1)

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
			close(ch)
		})
	}
}
