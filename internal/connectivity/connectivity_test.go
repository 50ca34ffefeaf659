package connectivity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err   atomic.Value
	calls atomic.Int32
}

func (f *fakePinger) Ping(context.Context) error {
	f.calls.Add(1)
	if err, ok := f.err.Load().(error); ok && err != nil {
		return err
	}
	return nil
}

func TestMonitor_SetAndOnline(t *testing.T) {
	m := NewMonitor(false)
	assert.False(t, m.Online())
	assert.True(t, m.CheckedAt().IsZero())

	m.Set(true)
	assert.True(t, m.Online())
	assert.False(t, m.CheckedAt().IsZero())
}

func TestMonitor_SubscribeReceivesTransitionsOnly(t *testing.T) {
	m := NewMonitor(true)
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Set(true)
	select {
	case <-ch:
		t.Fatal("unexpected notification without a state change")
	default:
	}

	m.Set(false)
	select {
	case v := <-ch:
		assert.False(t, v)
	case <-time.After(time.Second):
		t.Fatal("expected notification")
	}
}

func TestMonitor_SlowSubscriberSeesLatest(t *testing.T) {
	m := NewMonitor(true)
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Set(false)
	m.Set(true)
	m.Set(false)

	assert.False(t, <-ch)
	select {
	case <-ch:
		t.Fatal("expected a single buffered value")
	default:
	}
}

func TestMonitor_ConcurrentSetsLeaveSubscriberConsistent(t *testing.T) {
	for range 50 {
		m := NewMonitor(false)
		ch, cancel := m.Subscribe()

		var wg sync.WaitGroup
		for i := range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m.Set(i%2 == 0)
			}()
		}
		wg.Wait()

		select {
		case last := <-ch:
			assert.Equal(t, m.Online(), last)
		default:
			assert.False(t, m.Online())
		}
		cancel()
	}
}

func TestMonitor_Unsubscribe(t *testing.T) {
	m := NewMonitor(true)
	ch, cancel := m.Subscribe()
	cancel()
	cancel()

	m.Set(false)
	_, ok := <-ch
	assert.False(t, ok)
}

func TestProber_Probe(t *testing.T) {
	pinger := &fakePinger{}
	m := NewMonitor(false)
	p, err := NewProber(pinger, m, time.Minute)
	require.NoError(t, err)

	p.Probe()
	assert.True(t, m.Online())

	pinger.err.Store(errors.New("connection refused"))
	p.Probe()
	assert.False(t, m.Online())
	assert.Equal(t, int32(2), pinger.calls.Load())
}

func TestProber_StartStop(t *testing.T) {
	pinger := &fakePinger{}
	m := NewMonitor(false)
	p, err := NewProber(pinger, m, time.Second)
	require.NoError(t, err)

	p.Start()
	assert.Eventually(t, m.Online, 2*time.Second, 10*time.Millisecond)
	p.Stop()
	assert.GreaterOrEqual(t, pinger.calls.Load(), int32(1))
}
