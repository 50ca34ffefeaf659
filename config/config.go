// Package config provides configuration management for the count service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
)

// Config holds the complete application configuration.
type Config struct {
	Server       ServerConfig
	Logging      LoggingConfig
	Auth         AuthConfig
	Store        StoreConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	ServiceLayer ServiceLayerConfig
	Connectivity ConnectivityConfig
	Printer      PrinterConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	IdempotencyTTL  time.Duration
	SwaggerUser     string
	SwaggerPass     string
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// AuthConfig holds device token configuration.
type AuthConfig struct {
	Enabled      bool
	JWTSecretKey string
	TokenTTL     time.Duration
}

// StoreConfig selects where session state is persisted.
type StoreConfig struct {
	Backend string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	ActivityTTL  time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// RedisConfig holds Redis configuration for the redis session store.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	// SessionTTL expires idle sessions. Zero, the default, keeps them until overwritten;
	// an expired session loses its tally as if the device had never counted.
	SessionTTL time.Duration
}

// ServiceLayerConfig holds the ERP connection settings.
type ServiceLayerConfig struct {
	BaseURL            string
	CompanyDB          string
	UserName           string
	Password           string
	Timeout            time.Duration
	InsecureSkipVerify bool
	Simulate           bool
	SimulatedDelay     time.Duration
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerTimeout          time.Duration
}

// ConnectivityConfig controls the ERP reachability probe.
type ConnectivityConfig struct {
	ProbeInterval time.Duration
	// ProbeURL overrides the Service Layer base URL as probe target.
	ProbeURL string
}

// PrinterConfig holds the label printer address.
type PrinterConfig struct {
	Enabled bool
	Address string
	Timeout time.Duration
}

// Load reads an optional .env file from the working directory and creates
// a Config from environment variables. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFile is Load with an explicit env file. A missing file is not an error.
func LoadFile(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}
	cfg := fromEnv()
	return cfg, cfg.Validate()
}

// Validate rejects combinations the application cannot start with.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreRedis:
	case StoreMongo:
		if !c.Database.Enabled {
			return errors.New("STORE_BACKEND=mongo requires MONGODB_ENABLED=true")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if !c.ServiceLayer.Simulate && c.ServiceLayer.BaseURL == "" {
		return errors.New("SAP_SL_URL is required unless SAP_SL_SIMULATE=true")
	}
	if c.Printer.Enabled && c.Printer.Address == "" {
		return errors.New("PRINTER_ADDRESS is required when PRINTER_ENABLED=true")
	}
	return nil
}

func fromEnv() Config {
	return Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			CORSOrigins:     parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			IdempotencyTTL:  getEnvDuration("IDEMPOTENCY_TTL", 5*time.Minute),
			SwaggerUser:     os.Getenv("SWAGGER_USER"),
			SwaggerPass:     os.Getenv("SWAGGER_PASS"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Auth: AuthConfig{
			Enabled:      getEnvBool("AUTH_ENABLED", false),
			JWTSecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			TokenTTL:     getEnvDuration("JWT_TOKEN_TTL", 12*time.Hour),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "count_service"),
			ActivityTTL:                    getEnvDuration("MONGODB_ACTIVITY_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			SessionTTL: getEnvDuration("REDIS_SESSION_TTL", 0),
		},
		ServiceLayer: ServiceLayerConfig{
			BaseURL:                        getEnv("SAP_SL_URL", ""),
			CompanyDB:                      getEnv("SAP_SL_COMPANY_DB", ""),
			UserName:                       getEnv("SAP_SL_USER", ""),
			Password:                       getEnv("SAP_SL_PASSWORD", ""),
			Timeout:                        getEnvDuration("SAP_SL_TIMEOUT", 30*time.Second),
			InsecureSkipVerify:             getEnvBool("SAP_SL_INSECURE", false),
			Simulate:                       getEnvBool("SAP_SL_SIMULATE", true),
			SimulatedDelay:                 getEnvDuration("SAP_SL_SIMULATED_DELAY", 2*time.Second),
			CircuitBreakerFailureThreshold: getEnvInt("SAP_SL_CIRCUIT_BREAKER_FAILURE_THRESHOLD", 3),
			CircuitBreakerTimeout:          getEnvDuration("SAP_SL_CIRCUIT_BREAKER_TIMEOUT", time.Minute),
		},
		Connectivity: ConnectivityConfig{
			ProbeInterval: getEnvDuration("CONNECTIVITY_PROBE_INTERVAL", 15*time.Second),
			ProbeURL:      getEnv("CONNECTIVITY_PROBE_URL", ""),
		},
		Printer: PrinterConfig{
			Enabled: getEnvBool("PRINTER_ENABLED", false),
			Address: getEnv("PRINTER_ADDRESS", ""),
			Timeout: getEnvDuration("PRINTER_TIMEOUT", 5*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
