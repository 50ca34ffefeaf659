//go:build integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/count-service/config"
	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mongoConfig(t *testing.T) config.Config {
	cfg := testConfig()
	cfg.Store.Backend = config.StoreMongo
	cfg.Database.Enabled = true
	cfg.Database.URI = getSharedContainerURI()
	cfg.Database.DatabaseName = sanitizeDBNameForApp(t.Name())
	return cfg
}

func request(a *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-ID", "dev-1")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func TestInitializeApp_MongoIntegration(t *testing.T) {
	cfg := mongoConfig(t)

	a, err := InitializeApp(cfg)
	require.NoError(t, err)

	w := request(a, http.MethodPost, "/api/session/login",
		`{"operator_id":"1234","warehouse_code":"01","location_code":"A-01"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = request(a, http.MethodPost, "/api/scans", `{"code":"sku-9"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(a, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mongodb")

	// Close flushes the pending activity entries.
	a.Close()

	db := InitializeDatabase(cfg.Database)
	require.NotNil(t, db)
	defer closeDatabase(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := db.ActivityService.Query(ctx, model.ActivityQueryOptions{DeviceID: "dev-1"})
	require.NoError(t, err)
	actions := make([]string, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	assert.ElementsMatch(t, []string{model.ActionLogin, model.ActionScanInsert}, actions)

	// a second application sees the persisted tally
	b, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer b.Close()
	w = request(b, http.MethodGet, "/api/tally", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SKU-9")
}
