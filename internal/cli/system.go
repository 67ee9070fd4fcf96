package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lycosidae/internal/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		status, err := a.client.HealthCheck(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "status: %s\nservice: %s\ndatabase: %s\nversion: %s\n",
			status.Status, status.Service, status.DatabaseStatus, status.Version)
		return nil
	},
}

var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Show the current rate-limit budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		info, err := a.client.RateLimitStatus(cmd.Context())
		if err != nil {
			return err
		}
		a.bridge.ShowRateLimitStatus(info)
		fmt.Fprintf(cmd.OutOrStdout(), "%d de %d requisições disponíveis (reset em %d)\n",
			info.Remaining, info.Limit, info.ResetTime)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the backend answers at all",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		resp, err := a.client.Ping(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll backend health until interrupted",
	Long: `watch probes the backend on the configured interval and reports
connectivity transitions as they happen. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.shutdown()

		poller := health.NewPoller(a.client, a.bus,
			health.WithInterval(a.cfg.HealthInterval),
			health.WithLogger(a.logger),
			health.WithMetrics(a.metrics),
		)
		poller.Start(ctx)

		fmt.Fprintf(cmd.OutOrStdout(), "monitorando %s a cada %s (Ctrl-C para sair)\n",
			a.cfg.BaseURL, a.cfg.HealthInterval)

		<-ctx.Done()
		poller.Stop()
		fmt.Fprintln(cmd.OutOrStdout(), "monitoramento encerrado")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd, ratelimitCmd, pingCmd, watchCmd)
}
