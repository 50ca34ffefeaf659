package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type countingRouter struct {
	*gin.Engine
	calls  atomic.Int32
	status int
}

func newCountingRouter(t *testing.T, cfg IdempotencyConfig) *countingRouter {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := &countingRouter{Engine: gin.New(), status: http.StatusCreated}
	r.Use(DeviceIdentity(), Idempotency(cfg))
	handler := func(c *gin.Context) {
		n := r.calls.Add(1)
		c.JSON(r.status, gin.H{"call": n})
	}
	r.POST("/api/scans", handler)
	r.DELETE("/api/tally/:index", handler)
	r.GET("/api/tally", handler)
	return r
}

func (r *countingRouter) do(method, path, key, device, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	if device != "" {
		req.Header.Set(DeviceIDHeader, device)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccessfulWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := newCountingRouter(t, NewIdempotencyConfig(ctx, 0))

	first := r.do(http.MethodPost, "/api/scans", "scan-1", "d1", `{"code":"A","quantity":2}`)
	second := r.do(http.MethodPost, "/api/scans", "scan-1", "d1", `{"code":"A","quantity":2}`)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestIdempotency_KeyScope(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tests := []struct {
		name      string
		method    string
		path      string
		key       string
		device    string
		body      string
		wantCalls int32
	}{
		{name: "same request replays", method: http.MethodPost, path: "/api/scans", key: "k", device: "d1", body: `{"code":"A"}`, wantCalls: 1},
		{name: "other device executes", method: http.MethodPost, path: "/api/scans", key: "k", device: "d2", body: `{"code":"A"}`, wantCalls: 2},
		{name: "other body executes", method: http.MethodPost, path: "/api/scans", key: "k", device: "d1", body: `{"code":"B"}`, wantCalls: 2},
		{name: "no key executes", method: http.MethodPost, path: "/api/scans", device: "d1", body: `{"code":"A"}`, wantCalls: 2},
		{name: "reads are never cached", method: http.MethodGet, path: "/api/tally", key: "k", device: "d1", wantCalls: 2},
		{name: "deletes are replayed", method: http.MethodDelete, path: "/api/tally/0", key: "k", device: "d1", wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newCountingRouter(t, NewIdempotencyConfig(ctx, 0))
			r.do(http.MethodPost, "/api/scans", "k", "d1", `{"code":"A"}`)
			if tt.method == http.MethodDelete || tt.method == http.MethodGet {
				r.calls.Store(0)
				r.do(tt.method, tt.path, "k", "d1", "")
			}
			r.do(tt.method, tt.path, tt.key, tt.device, tt.body)
			assert.Equal(t, tt.wantCalls, r.calls.Load())
		})
	}
}

func TestIdempotency_FailuresAreNotCached(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := newCountingRouter(t, NewIdempotencyConfig(ctx, 0))
	r.status = http.StatusServiceUnavailable

	for i := 0; i < 3; i++ {
		w := r.do(http.MethodPost, "/api/scans", "k", "d1", `{}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, strconv.Itoa(i))
	}
	assert.Equal(t, int32(3), r.calls.Load())
}

func TestIdempotency_ConcurrentRetryConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := NewIdempotencyConfig(ctx, 0)

	entered := make(chan struct{})
	release := make(chan struct{})
	router := gin.New()
	router.Use(DeviceIdentity(), Idempotency(cfg))
	router.POST("/api/sync", func(c *gin.Context) {
		close(entered)
		<-release
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	firstDone := make(chan *httptest.ResponseRecorder)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
		req.Header.Set(IdempotencyKeyHeader, "sync-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		firstDone <- w
	}()
	<-entered

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set(IdempotencyKeyHeader, "sync-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	close(release)
	assert.Equal(t, http.StatusOK, (<-firstDone).Code)
}

func TestIdempotency_Disabled(t *testing.T) {
	r := newCountingRouter(t, IdempotencyConfig{Enabled: false})

	r.do(http.MethodPost, "/api/scans", "k", "d1", `{}`)
	r.do(http.MethodPost, "/api/scans", "k", "d1", `{}`)

	assert.Equal(t, int32(2), r.calls.Load())
}
