package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"lycosidae/internal/api"
	"lycosidae/internal/events"
	"lycosidae/internal/platform/metrics"
)

// DefaultInterval is how often the backend is probed when no interval is
// configured.
const DefaultInterval = 30 * time.Second

// Checker probes the backend health endpoint.
type Checker interface {
	HealthCheck(ctx context.Context) (api.HealthStatus, error)
}

// Poller probes the backend on a fixed interval and tracks an on/off
// reachability status. Transitions are broadcast as Connectivity events;
// steady states are not re-announced.
type Poller struct {
	checker  Checker
	bus      *events.Bus
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu        sync.RWMutex
	running   bool
	online    bool
	checked   bool
	lastCheck time.Time
	lastErr   error

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// Option configures the Poller.
type Option func(*Poller)

// WithInterval overrides the probe interval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		p.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Poller) {
		p.metrics = m
	}
}

// NewPoller constructs a stopped poller.
func NewPoller(checker Checker, bus *events.Bus, opts ...Option) *Poller {
	p := &Poller{
		checker:  checker,
		bus:      bus,
		interval: DefaultInterval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Start probes once immediately, then on every interval tick until Stop
// is called or ctx is cancelled. Subsequent calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.mu.Lock()
		p.running = true
		p.mu.Unlock()
		go p.run(ctx)
	})
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.check(ctx)
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop halts polling and waits for the in-flight probe, if any, to
// finish. Stopping twice is safe.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	p.mu.RLock()
	running := p.running
	p.mu.RUnlock()
	if running {
		<-p.done
	}
}

func (p *Poller) check(ctx context.Context) {
	status, err := p.checker.HealthCheck(ctx)
	now := time.Now()
	online := err == nil

	p.mu.Lock()
	wasOnline := p.online
	hadChecked := p.checked
	p.online = online
	p.checked = true
	p.lastCheck = now
	p.lastErr = err
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.SetAPIOnline(online)
	}

	if err != nil {
		p.logger.WarnContext(ctx, "health check failed", "error", err)
	} else {
		p.logger.DebugContext(ctx, "health check ok", "status", status.Status, "database", status.DatabaseStatus)
	}

	// Announce the very first offline observation and every flip after
	// that. Starting healthy is the expected case and stays quiet.
	transitioned := hadChecked && online != wasOnline
	if transitioned || (!hadChecked && !online) {
		p.bus.PublishConnectivity(events.ConnectivityEvent{Online: online, At: now})
	}
}

// Online reports the reachability observed by the latest probe. Before
// the first probe completes it reports false.
func (p *Poller) Online() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.checked && p.online
}

// LastCheck returns when the latest probe ran. The zero time means no
// probe has completed yet.
func (p *Poller) LastCheck() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastCheck
}

// Err returns the failure from the latest probe, or nil when the backend
// was reachable.
func (p *Poller) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.lastErr == nil {
		return nil
	}
	return fmt.Errorf("last health probe: %w", p.lastErr)
}
