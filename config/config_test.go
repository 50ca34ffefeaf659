package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, StoreMemory, cfg.Store.Backend)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.False(t, cfg.Auth.Enabled)
		assert.True(t, cfg.ServiceLayer.Simulate)
		assert.Equal(t, 2*time.Second, cfg.ServiceLayer.SimulatedDelay)
		assert.Equal(t, 15*time.Second, cfg.Connectivity.ProbeInterval)
		assert.False(t, cfg.Printer.Enabled)
		assert.Zero(t, cfg.Redis.SessionTTL, "redis sessions must not expire by default")
		assert.Empty(t, cfg.Server.SwaggerUser)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("STORE_BACKEND", "Redis")
		_ = os.Setenv("REDIS_ADDR", "redis:6379")
		_ = os.Setenv("REDIS_DB", "2")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("JWT_TOKEN_TTL", "1h")
		_ = os.Setenv("SAP_SL_URL", "https://sap:50000/b1s/v1")
		_ = os.Setenv("SAP_SL_SIMULATE", "false")
		_ = os.Setenv("PRINTER_ENABLED", "true")
		_ = os.Setenv("PRINTER_ADDRESS", "10.0.0.5")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, StoreRedis, cfg.Store.Backend)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.Equal(t, 2, cfg.Redis.DB)
		assert.True(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, "https://sap:50000/b1s/v1", cfg.ServiceLayer.BaseURL)
		assert.False(t, cfg.ServiceLayer.Simulate)
		assert.True(t, cfg.Printer.Enabled)
		assert.Equal(t, "10.0.0.5", cfg.Printer.Address)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("REDIS_DB", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("CONNECTIVITY_PROBE_INTERVAL", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 0, cfg.Redis.DB)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, 15*time.Second, cfg.Connectivity.ProbeInterval)
	})

	t.Run("appends CORS origins to defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", " https://scanner.example , ")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://scanner.example"}, cfg.Server.CORSOrigins)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads env file", func(t *testing.T) {
		os.Clearenv()
		defer os.Clearenv()

		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nSAP_SL_SIMULATED_DELAY=250ms\n"), 0o600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, 250*time.Millisecond, cfg.ServiceLayer.SimulatedDelay)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9999")
		defer os.Clearenv()

		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("PORT=7070\n"), 0o600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "9999", cfg.Server.Port)
	})

	t.Run("missing file is fine", func(t *testing.T) {
		os.Clearenv()
		defer os.Clearenv()

		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
		assert.NoError(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := func() Config {
		os.Clearenv()
		return fromEnv()
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Backend = "sqlite" }, wantErr: "unknown STORE_BACKEND"},
		{name: "mongo store without mongo", mutate: func(c *Config) { c.Store.Backend = StoreMongo }, wantErr: "MONGODB_ENABLED"},
		{name: "mongo store with mongo", mutate: func(c *Config) {
			c.Store.Backend = StoreMongo
			c.Database.Enabled = true
		}},
		{name: "real erp without url", mutate: func(c *Config) { c.ServiceLayer.Simulate = false }, wantErr: "SAP_SL_URL"},
		{name: "printer without address", mutate: func(c *Config) { c.Printer.Enabled = true }, wantErr: "PRINTER_ADDRESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
