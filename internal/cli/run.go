package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hanactl/internal/config"
	"hanactl/internal/dashboard"
	"hanactl/internal/logging"
	"hanactl/internal/transfer"
)

func newRunCmd() *cobra.Command {
	var mode string
	var since, until string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the agent loop, the dashboard, or both",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			closeLog, err := logging.Configure(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := loadClient(cfg)
			if err != nil {
				return err
			}
			runner := transfer.NewRunner(client, cfg.PurgePerSecond, cfg.PurgePageSize)

			ctx, cancel := signalContext()
			defer cancel()

			switch mode {
			case "agent":
				return runAgentLoop(ctx, runner, cfg, since, until)
			case "dashboard", "both":
				if mode == "both" {
					go runAgentLoop(ctx, runner, cfg, since, until) //nolint:errcheck
				}
				s := dashboard.New(cfg, runner)
				logging.Logger().Printf("Starting dashboard on %s:%d\n", cfg.DashboardHost, cfg.DashboardPort)
				err = s.Run(ctx)
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			default:
				return fmt.Errorf("invalid --mode: %s (agent|dashboard|both)", mode)
			}
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "both", "run mode: agent|dashboard|both")
	cmd.Flags().StringVar(&since, "since", "", "earliest date for each round's window")
	cmd.Flags().StringVar(&until, "until", "", "latest date for each round's window")
	return cmd
}

func runAgentLoop(ctx context.Context, r *transfer.Runner, cfg config.Config, since, until string) error {
	log := logging.Logger()
	interval := time.Duration(cfg.RunIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown requested")
			r.Stop()
			return nil
		default:
		}

		roundCtx, cancel := context.WithTimeout(ctx, interval)
		r.RunOnce(roundCtx, since, until)
		cancel()

		log.Printf("Sleeping for %d seconds...\n", cfg.RunIntervalSeconds)
		select {
		case <-ctx.Done():
			r.Stop()
			return nil
		case <-ticker.C:
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
