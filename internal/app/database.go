// Package app provides database initialization and setup.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/count-service/config"
	"github.com/guttosm/count-service/internal/circuitbreaker"
	"github.com/guttosm/count-service/internal/metrics"
	"github.com/guttosm/count-service/internal/repository"
	"github.com/guttosm/count-service/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds MongoDB-backed components.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	ActivityService        service.ActivityService
	ActivityCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and creates the activity trail.
// Returns nil if the database is disabled or the connection fails; the
// service then runs without an audit trail.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.ActivityTTL.Hours() / 24)
	if ttlDays > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.SetActivityTTL(ctx, ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set activity TTL index (may already exist)")
		}
		cancel()
	}

	activityCB := newBreaker(cfg, "mongodb-activity")
	activityRepo := repository.NewActivityRepositoryWithCircuitBreaker(repository.NewActivityRepository(db), activityCB)

	return &DatabaseComponents{
		DB:                     db,
		ActivityService:        service.NewActivityService(activityRepo),
		ActivityCircuitBreaker: activityCB,
	}
}

// StoreComponents holds the session store selected by STORE_BACKEND.
type StoreComponents struct {
	Store          repository.SessionStore
	CircuitBreaker *circuitbreaker.CircuitBreaker
	// Ping checks the backing server; nil for the memory store.
	Ping  func(ctx context.Context) error
	Close func() error
}

// InitializeSessionStore builds the session store. The mongo backend reuses db.
func InitializeSessionStore(cfg config.Config, db *DatabaseComponents) (*StoreComponents, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		log.Warn().Msg("Using in-memory session store - tallies are lost on restart")
		return &StoreComponents{Store: repository.NewMemorySessionStore()}, nil

	case config.StoreMongo:
		if db == nil {
			return nil, fmt.Errorf("session store %q: MongoDB is not available", cfg.Store.Backend)
		}
		cb := newBreaker(cfg.Database, "mongodb-sessions")
		return &StoreComponents{
			Store:          repository.NewSessionStoreWithCircuitBreaker(repository.NewMongoSessionStore(db.DB), cb),
			CircuitBreaker: cb,
			Ping:           db.DB.HealthCheck,
		}, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := repository.NewRedisSessionStore(client, cfg.Redis.SessionTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")

		cb := newBreaker(cfg.Database, "redis-sessions")
		return &StoreComponents{
			Store:          repository.NewSessionStoreWithCircuitBreaker(store, cb),
			CircuitBreaker: cb,
			Ping:           store.Ping,
			Close:          client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store.Backend)
	}
}

// newBreaker creates a store circuit breaker that publishes its state.
func newBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange:    publishBreakerState,
	})
}

func publishBreakerState(name string, _, to circuitbreaker.State) {
	metrics.SetCircuitState(name, int(to))
}
