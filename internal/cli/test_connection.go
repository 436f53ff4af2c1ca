package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hanactl/internal/config"
)

func newTestConnectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Verify configuration, credential and the signed channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Println("\n" + repeat("=", 60))
			fmt.Println("CONFIGURATION TEST")
			fmt.Println(repeat("=", 60))
			fmt.Println("[OK] Configuration loaded successfully")
			fmt.Printf("  - Agent URL: %s\n", cfg.AgentURL)
			fmt.Printf("  - Request timeout: %ds\n", cfg.RequestTimeoutSeconds)
			fmt.Printf("  - Max attempts: %d\n", cfg.MaxAttempts)

			fmt.Println("\n" + repeat("=", 60))
			fmt.Println("CREDENTIAL TEST")
			fmt.Println(repeat("=", 60))
			cred, err := config.LoadCredential(cfg.CredentialFile)
			if err != nil {
				return fmt.Errorf("[FAIL] no usable credential (run `hanactl login`): %w", err)
			}
			fmt.Println("[OK] Credential file loaded")
			fmt.Printf("  - Agent ID: %s\n", cred.AgentID)
			fmt.Printf("  - Key ID: %s\n", cred.KeyID)

			fmt.Println("\n" + repeat("=", 60))
			fmt.Println("SIGNED CHANNEL TEST")
			fmt.Println(repeat("=", 60))
			client, err := loadClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			start := time.Now()
			serverTime, err := client.Ping(ctx)
			if err != nil {
				return fmt.Errorf("[FAIL] signed ping error: %w", err)
			}
			fmt.Println("[OK] Signed ping accepted")
			fmt.Printf("  - Round trip: %s\n", time.Since(start).Round(time.Millisecond))
			skew := time.Now().Unix() - serverTime
			fmt.Printf("  - Clock skew vs server: %+ds\n", skew)
			if skew > 60 || skew < -60 {
				fmt.Println("[WARNING] Clock skew is large; the service may reject signed timestamps")
			}
			return nil
		},
	}
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
