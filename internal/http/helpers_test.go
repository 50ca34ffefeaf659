package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/internal/domain/dto"
	"github.com/guttosm/count-service/internal/middleware"
	"github.com/guttosm/count-service/internal/mocks"
	"github.com/guttosm/count-service/internal/repository"
	"github.com/guttosm/count-service/internal/service"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 4, 14, 9, 30, 15, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	registry  *service.EngineRegistry
	transport *mocks.MockSyncTransport
	online    *mocks.MockConnectivity
	labels    *mocks.MockLabelEmitter
	activity  *mocks.MockActivityService

	onlineCall *mock.Call
}

type serverOption func(*HandlerConfig, *RouterConfig)

func withTokens(tokens service.DeviceTokenService) serverOption {
	return func(_ *HandlerConfig, rc *RouterConfig) {
		rc.Tokens = tokens
	}
}

func withIdempotency(t *testing.T) serverOption {
	return func(_ *HandlerConfig, rc *RouterConfig) {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		rc.Idempotency = middleware.NewIdempotencyConfig(ctx, time.Minute)
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	s := &testServer{
		registry: service.NewEngineRegistry(service.EngineOptions{
			Store: repository.NewMemorySessionStore(),
			Now:   func() time.Time { return fixedNow },
		}),
		transport: new(mocks.MockSyncTransport),
		online:    new(mocks.MockConnectivity),
		labels:    new(mocks.MockLabelEmitter),
		activity:  new(mocks.MockActivityService),
	}
	s.onlineCall = s.online.On("Online").Return(true).Maybe()
	s.online.On("CheckedAt").Return(fixedNow).Maybe()

	syncSvc := service.NewSyncService(service.SyncServiceConfig{
		Registry:     s.registry,
		Transport:    s.transport,
		Connectivity: s.online,
		Now:          func() time.Time { return fixedNow },
	})

	hc := HandlerConfig{
		Registry:     s.registry,
		Sync:         syncSvc,
		Labels:       s.labels,
		Connectivity: s.online,
		Activity:     s.activity,
		LabelTimeout: time.Second,
		Now:          func() time.Time { return fixedNow },
	}
	rc := RouterConfig{EnableActivity: true}
	for _, opt := range opts {
		opt(&hc, &rc)
	}
	if rc.Tokens != nil {
		hc.Tokens = rc.Tokens
	}

	s.router = NewRouter(NewHandler(hc), NewHealthHandler(), rc)
	return s
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.DeviceIDHeader, "dev-1")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/session/login",
		`{"operator_id":"1234","warehouse_code":"01","location_code":"A-01"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *testServer) scan(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/scans", body)
}

type envelope[T any] struct {
	Data      T      `json:"data"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

// goOffline makes the connectivity monitor report the ERP as unreachable.
func (s *testServer) goOffline() {
	s.onlineCall.Unset()
	s.online.On("Online").Return(false)
}

var anyCtx = mock.Anything
