package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hanactl/internal/config"
)

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the .env configuration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Println("\n✓ Configuration is valid!")
			fmt.Printf("  - Agent URL: %s\n", cfg.AgentURL)
			fmt.Printf("  - Credential file: %s\n", cfg.CredentialFile)
			fmt.Printf("  - Max attempts: %d (backoff %dms..%dms)\n", cfg.MaxAttempts, cfg.RetryBaseMillis, cfg.RetryMaxMillis)
			fmt.Printf("  - Purge pacing: %.1f delete(s)/s, page size %d\n", cfg.PurgePerSecond, cfg.PurgePageSize)
			fmt.Printf("  - Dashboard: http://%s:%d\n", cfg.DashboardHost, cfg.DashboardPort)
			return nil
		},
	}
}
