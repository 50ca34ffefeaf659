package app

import (
	"time"

	"github.com/guttosm/count-service/config"
)

// testConfig is a valid configuration that needs no external service.
func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:            "0",
			ShutdownTimeout: time.Second,
			IdempotencyTTL:  time.Minute,
		},
		Logging: config.LoggingConfig{Level: "error"},
		Auth:    config.AuthConfig{TokenTTL: time.Hour},
		Store:   config.StoreConfig{Backend: config.StoreMemory},
		Database: config.DatabaseConfig{
			DatabaseName:                   "count_service_test",
			ActivityTTL:                    24 * time.Hour,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Redis: config.RedisConfig{SessionTTL: time.Hour},
		ServiceLayer: config.ServiceLayerConfig{
			Simulate:                       true,
			CircuitBreakerFailureThreshold: 3,
			CircuitBreakerTimeout:          time.Minute,
		},
		Connectivity: config.ConnectivityConfig{ProbeInterval: time.Hour},
		Printer:      config.PrinterConfig{Timeout: time.Second},
	}
}
