// Package cli wires the terminal frontend for the Lycosidae client:
// auth, competition and system commands over the shared request engine.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"lycosidae/internal/api"
	"lycosidae/internal/auth/service"
	sessionStore "lycosidae/internal/auth/store/session"
	"lycosidae/internal/ctf"
	"lycosidae/internal/events"
	"lycosidae/internal/notify"
	"lycosidae/internal/platform/config"
	"lycosidae/internal/platform/logger"
	"lycosidae/internal/platform/metrics"
	platformredis "lycosidae/internal/platform/redis"
	"lycosidae/internal/platform/tracing"
)

var rootCmd = &cobra.Command{
	Use:   "lycosidae",
	Short: "Client for the Backend-Lycosidae CTF platform",
	Long: `lycosidae talks to the Backend-Lycosidae API: account registration,
competition enrollment, challenge tracking and backend health.

Sessions persist across invocations when LYCOSIDAE_REDIS_URL points at a
Redis instance; without it each invocation starts anonymous.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired dependencies one command invocation needs.
type app struct {
	cfg      config.Client
	logger   *slog.Logger
	bus      *events.Bus
	client   *api.Client
	auth     *service.Service
	ctf      *ctf.Service
	bridge   *notify.Bridge
	metrics  *metrics.Metrics
	shutdown func()
}

// newApp builds the dependency graph for a single command run. The
// notification bridge is started so API failures surface as terminal
// notices without each command handling them.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	// One metrics set per process; promauto registers globally.
	m := metrics.New()

	bus := events.NewBus()
	client := api.New(cfg.BaseURL, bus,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log),
		api.WithMetrics(m),
		api.WithTracer(tracing.NewOTel()),
	)

	var sessions sessionStore.Store = sessionStore.NewInMemoryStore()
	var ctfStore ctf.Store = ctf.NewInMemoryStore()
	var closeRedis func()

	if cfg.RedisURL != "" {
		rc, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		if rc != nil {
			sessions = sessionStore.NewRedisStore(rc.Client, "lycosidae")
			ctfStore = ctf.NewRedisStore(rc.Client, "lycosidae")
			closeRedis = func() {
				if err := rc.Close(); err != nil {
					log.Warn("close redis", "error", err)
				}
			}
		}
	}

	bridge := notify.NewBridge(bus, notify.NewSlogSink(log), notify.WithLogger(log))
	if err := bridge.Start(); err != nil {
		return nil, err
	}

	ctfSvc := ctf.NewService(ctfStore, ctf.WithLogger(log))
	if err := ctfSvc.Seed(ctx); err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  log,
		bus:     bus,
		client:  client,
		auth:    service.NewService(client, sessions, bus, service.WithLogger(log), service.WithMetrics(m)),
		ctf:     ctfSvc,
		bridge:  bridge,
		metrics: m,
	}
	a.shutdown = func() {
		bridge.Stop()
		if closeRedis != nil {
			closeRedis()
		}
	}
	return a, nil
}

// requireUser resolves the current session or fails the command.
func (a *app) requireUser(ctx context.Context) (string, error) {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("nenhuma sessão ativa: faça login ou registre-se primeiro")
	}
	return user.ID, nil
}
