// Package app provides service initialization.
package app

import (
	"fmt"

	"github.com/guttosm/count-service/config"
	"github.com/guttosm/count-service/internal/circuitbreaker"
	"github.com/guttosm/count-service/internal/connectivity"
	"github.com/guttosm/count-service/internal/printer"
	"github.com/guttosm/count-service/internal/repository"
	"github.com/guttosm/count-service/internal/service"
	"github.com/guttosm/count-service/internal/transport/servicelayer"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds the counting services and their ERP collaborators.
type ServiceComponents struct {
	Registry   *service.EngineRegistry
	Sync       service.SyncService
	Recorder   *service.AsyncRecorder
	Monitor    *connectivity.Monitor
	Prober     *connectivity.Prober
	ERPBreaker *circuitbreaker.CircuitBreaker
	Labels     printer.Emitter
}

// erpLink is what the application needs from an ERP transport.
type erpLink interface {
	service.SyncTransport
	connectivity.Pinger
}

// InitializeServices wires the tally engines, the sync service and the ERP link.
// activity may be nil when MongoDB is disabled.
func InitializeServices(cfg config.Config, store repository.SessionStore, activity service.ActivityService) (*ServiceComponents, error) {
	var recorder *service.AsyncRecorder
	var activityRecorder service.ActivityRecorder
	if activity != nil {
		recorder = service.NewAsyncRecorder(activity, service.DefaultAsyncRecorderConfig())
		activityRecorder = recorder
	}

	registry := service.NewEngineRegistry(service.EngineOptions{
		Store:    store,
		Activity: activityRecorder,
	})

	link := newERPLink(cfg.ServiceLayer)

	var pinger connectivity.Pinger = link
	if cfg.Connectivity.ProbeURL != "" {
		pinger = connectivity.NewHTTPPinger(cfg.Connectivity.ProbeURL, cfg.Connectivity.ProbeInterval, cfg.ServiceLayer.InsecureSkipVerify)
	}
	// optimistic until the first probe answers
	monitor := connectivity.NewMonitor(true)
	prober, err := connectivity.NewProber(pinger, monitor, cfg.Connectivity.ProbeInterval)
	if err != nil {
		return nil, fmt.Errorf("connectivity prober: %w", err)
	}

	erpBreaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.ServiceLayer.CircuitBreakerFailureThreshold,
		SuccessThreshold: 1,
		Timeout:          cfg.ServiceLayer.CircuitBreakerTimeout,
		Name:             "erp",
		// a rejected document says nothing about the ERP's health
		IsFailure:     func(err error) bool { return !service.IsRejection(err) },
		OnStateChange: publishBreakerState,
	})

	syncSvc := service.NewSyncService(service.SyncServiceConfig{
		Registry:     registry,
		Transport:    link,
		Connectivity: monitor,
		Breaker:      erpBreaker,
		Activity:     activityRecorder,
	})

	return &ServiceComponents{
		Registry:   registry,
		Sync:       syncSvc,
		Recorder:   recorder,
		Monitor:    monitor,
		Prober:     prober,
		ERPBreaker: erpBreaker,
		Labels:     newLabelEmitter(cfg.Printer),
	}, nil
}

func newERPLink(cfg config.ServiceLayerConfig) erpLink {
	if cfg.Simulate {
		log.Warn().Dur("delay", cfg.SimulatedDelay).Msg("ERP simulation enabled - documents are not sent anywhere")
		return servicelayer.SimulatedTransport{Delay: cfg.SimulatedDelay}
	}
	log.Info().Str("url", cfg.BaseURL).Str("company_db", cfg.CompanyDB).Msg("Using SAP Business One Service Layer")
	return servicelayer.NewClient(servicelayer.Config{
		BaseURL:            cfg.BaseURL,
		CompanyDB:          cfg.CompanyDB,
		UserName:           cfg.UserName,
		Password:           cfg.Password,
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})
}

func newLabelEmitter(cfg config.PrinterConfig) printer.Emitter {
	if !cfg.Enabled {
		return printer.LogEmitter{}
	}
	emitter := printer.NewTCPEmitter(cfg.Address, cfg.Timeout)
	log.Info().Str("address", emitter.Address()).Msg("Label printer configured")
	return emitter
}
