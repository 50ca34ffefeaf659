// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/count-service/config"
	"github.com/guttosm/count-service/internal/http"
	"github.com/guttosm/count-service/internal/service"
	"github.com/rs/zerolog/log"
)

// App is the wired application: the router plus the background workers
// that must be stopped on shutdown.
type App struct {
	Router *gin.Engine

	cancel   context.CancelFunc
	services *ServiceComponents
	store    *StoreComponents
	db       *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Logging)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tokens, err := InitializeDeviceTokens(cfg.Auth)
	if err != nil {
		return nil, err
	}

	db := InitializeDatabase(cfg.Database)

	store, err := InitializeSessionStore(cfg, db)
	if err != nil {
		closeDatabase(db)
		return nil, err
	}

	services, err := InitializeServices(cfg, store.Store, activityService(db))
	if err != nil {
		closeStore(store)
		closeDatabase(db)
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	rc := InitializeRouter(ctx, cfg, services, store, db, tokens)

	services.Prober.Start()

	log.Info().
		Str("store", cfg.Store.Backend).
		Bool("database", db != nil).
		Bool("auth", tokens != nil).
		Bool("erp_simulated", cfg.ServiceLayer.Simulate).
		Msg("Application initialized")

	return &App{
		Router:   http.NewRouter(rc.Handler, rc.HealthHandler, rc.Config),
		cancel:   cancel,
		services: services,
		store:    store,
		db:       db,
	}, nil
}

// Close stops the background workers and releases the stores.
// Pending activity entries are written before the database is closed.
func (a *App) Close() {
	a.cancel()
	a.services.Prober.Stop()
	a.services.Recorder.Stop()
	closeStore(a.store)
	closeDatabase(a.db)
}

func activityService(db *DatabaseComponents) service.ActivityService {
	if db == nil {
		return nil
	}
	return db.ActivityService
}

func closeStore(store *StoreComponents) {
	if store == nil || store.Close == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close session store")
	}
}

func closeDatabase(db *DatabaseComponents) {
	if db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := db.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to close MongoDB connection")
	}
}
