package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hanactl/internal/config"
	"hanactl/internal/logging"
	"hanactl/internal/transfer"
)

func newFetchCmd() *cobra.Command {
	var since, until, out string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Pull transfer jobs into the local work file",
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

			if out == "" {
				out = transfer.DefaultWorkPath()
			}
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			jobs, err := runner.Fetch(ctx, since, until, out)
			if err != nil {
				return err
			}

			fmt.Printf("Fetched %d job(s) into %s\n", len(jobs), out)
			for _, j := range jobs {
				logging.Debugf("id: %s, created_at: %s, state: %s", j.ID, j.CreatedAt().Format(time.RFC3339), j.State)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "earliest date for the window, e.g. 2025-01-01")
	cmd.Flags().StringVar(&until, "until", "", "latest date for the window, e.g. 2025-12-31")
	cmd.Flags().StringVar(&out, "out", "", "work file path (default: temp dir)")
	return cmd
}
