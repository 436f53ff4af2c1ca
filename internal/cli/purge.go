package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hanactl/internal/config"
	"hanactl/internal/logging"
	"hanactl/internal/transfer"
)

func newPurgeCmd() *cobra.Command {
	var since, until string
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete transfer jobs in the window, one by one, until none remain",
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

			if !yes {
				fmt.Println("Dry-run: add --yes to actually delete jobs.")
				return nil
			}

			client, err := loadClient(cfg)
			if err != nil {
				return err
			}
			runner := transfer.NewRunner(client, cfg.PurgePerSecond, cfg.PurgePageSize)

			log := logging.Logger()
			log.Println("Jobs are deleted one at a time; rounds repeat until the window is empty or the service throttles us.")

			ctx, cancel := signalContext()
			defer cancel()
			deleted, err := runner.Purge(ctx, since, until)
			if err != nil {
				return fmt.Errorf("purge stopped after deleting %d job(s): %w", deleted, err)
			}
			fmt.Printf("Deleted %d job(s)\n", deleted)
			return nil
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "earliest date for the window, e.g. 2025-01-01")
	cmd.Flags().StringVar(&until, "until", "", "latest date for the window, e.g. 2025-12-31")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
