package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func fail() error { return errBoom }

func ok() error { return nil }

func newTestBreaker(failures, successes int, timeout time.Duration) *CircuitBreaker {
	return New(Config{
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          timeout,
		Name:             "test",
	})
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := newTestBreaker(2, 1, time.Minute)
	ctx := context.Background()

	assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := newTestBreaker(2, 1, time.Minute)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	require.NoError(t, cb.Execute(ctx, ok))
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 1, cb.GetStats().FailureCount)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	tests := []struct {
		name      string
		trials    []func() error
		wantState State
	}{
		{"one success stays half-open", []func() error{ok}, StateHalfOpen},
		{"enough successes close", []func() error{ok, ok}, StateClosed},
		{"failure reopens", []func() error{ok, fail}, StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := newTestBreaker(1, 2, 20*time.Millisecond)
			ctx := context.Background()
			_ = cb.Execute(ctx, fail)
			require.True(t, cb.IsOpen())

			time.Sleep(30 * time.Millisecond)
			for _, trial := range tt.trials {
				_ = cb.Execute(ctx, trial)
			}
			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_IgnoredErrors(t *testing.T) {
	errRejected := errors.New("rejected by peer")
	cb := New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "test",
		IsFailure: func(err error) bool {
			return !errors.Is(err, errRejected)
		},
	})

	err := cb.Execute(context.Background(), func() error { return errRejected })
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_CancelledContext(t *testing.T) {
	cb := newTestBreaker(1, 1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := cb.Execute(ctx, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	var transitions []string
	cb := New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          10 * time.Millisecond,
		Name:             "store",
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+">"+to.String())
		},
	})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	time.Sleep(20 * time.Millisecond)
	_ = cb.Execute(ctx, ok)

	assert.Equal(t, []string{
		"store:closed>open",
		"store:open>half-open",
		"store:half-open>closed",
	}, transitions)
}

func TestCall(t *testing.T) {
	cb := newTestBreaker(1, 1, time.Minute)
	ctx := context.Background()

	v, err := Call(ctx, cb, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = Call(ctx, cb, func() (int, error) { return 7, errBoom })
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, v)

	_, err = Call(ctx, cb, func() (int, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestGetStats(t *testing.T) {
	cb := New(DefaultConfig())
	stats := cb.GetStats()

	assert.Equal(t, "circuit-breaker", stats.Name)
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
	assert.Equal(t, "unknown", State(9).String())
}
