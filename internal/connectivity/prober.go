package connectivity

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Pinger is anything that can tell whether the ERP answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober periodically pings the ERP and feeds the result into a Monitor.
type Prober struct {
	cron    *cron.Cron
	pinger  Pinger
	monitor *Monitor
	timeout time.Duration
}

// NewProber builds a prober. interval below one second is raised to one second.
func NewProber(pinger Pinger, monitor *Monitor, interval time.Duration) (*Prober, error) {
	if interval < time.Second {
		interval = time.Second
	}

	p := &Prober{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		pinger:  pinger,
		monitor: monitor,
		timeout: interval,
	}
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", interval), p.Probe); err != nil {
		return nil, fmt.Errorf("schedule connectivity probe: %w", err)
	}
	return p, nil
}

// Start runs a first probe right away and then schedules the rest.
func (p *Prober) Start() {
	log.Info().Str("component", "connectivity").Msg("Starting connectivity prober")
	go p.Probe()
	p.cron.Start()
}

// Stop stops scheduling and waits for a running probe.
func (p *Prober) Stop() {
	<-p.cron.Stop().Done()
	log.Info().Str("component", "connectivity").Msg("Connectivity prober stopped")
}

// Probe pings once and records the result.
func (p *Prober) Probe() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err := p.pinger.Ping(ctx)
	if err != nil {
		log.Debug().Err(err).Str("component", "connectivity").Msg("ERP probe failed")
	}
	p.monitor.Set(err == nil)
}
