//go:build !integration

package app

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewServer(t *testing.T) {
	tests := []struct {
		name            string
		shutdownTimeout time.Duration
		want            time.Duration
	}{
		{"explicit timeout", 3 * time.Second, 3 * time.Second},
		{"zero falls back", 0, 10 * time.Second},
		{"negative falls back", -time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler, "8080", tt.shutdownTimeout)

			require.NotNil(t, server.httpServer)
			assert.Equal(t, ":8080", server.httpServer.Addr)
			assert.Equal(t, 5*time.Second, server.httpServer.ReadHeaderTimeout)
			assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
			assert.Equal(t, 60*time.Second, server.httpServer.WriteTimeout)
			assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
			assert.Equal(t, tt.want, server.shutdownTimeout)
		})
	}
}

func TestServer_ShutdownWithoutRun(t *testing.T) {
	server := NewServer(okHandler, "0", time.Second)
	assert.NoError(t, server.Shutdown())
}

func TestServer_RunStopsOnSIGTERM(t *testing.T) {
	server := NewServer(okHandler, "0", time.Second)

	errChan := make(chan error, 1)
	go func() { errChan <- server.Run() }()

	time.Sleep(100 * time.Millisecond)
	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_RunReturnsListenError(t *testing.T) {
	server := NewServer(okHandler, "invalid-port", time.Second)

	errChan := make(chan error, 1)
	go func() { errChan <- server.Run() }()

	select {
	case err := <-errChan:
		assert.Error(t, err)
	case <-time.After(time.Second):
		_ = server.httpServer.Shutdown(context.Background())
		t.Fatal("expected a listen error")
	}
}
