package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hanactl/internal/config"
	"hanactl/internal/enroll"
)

func newLoginCmd() *cobra.Command {
	var force bool
	var name string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Enroll this agent with the service and store its credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if _, err := config.LoadCredential(cfg.CredentialFile); err == nil && !force {
				fmt.Printf("Credential already present at %s, use --force to re-enroll\n", cfg.CredentialFile)
				return nil
			}

			if name == "" {
				host, err := os.Hostname()
				if err != nil {
					return fmt.Errorf("resolve agent name: %w", err)
				}
				name = host
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			res, err := enroll.New(cfg.AgentURL, cfg.APIToken).Enroll(ctx, name)
			if err != nil {
				return err
			}

			cred := config.Credential{
				AgentID: res.AgentID,
				KeyID:   res.KeyID,
				Secret:  base64.StdEncoding.EncodeToString(res.Secret),
			}
			if err := config.SaveCredential(cfg.CredentialFile, cred); err != nil {
				return fmt.Errorf("store credential: %w", err)
			}

			fmt.Printf("Enrolled as %q (agent id %s)\n", name, res.AgentID)
			fmt.Printf("Credential stored at %s\n", cfg.CredentialFile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "re-enroll and overwrite the stored credential")
	cmd.Flags().StringVar(&name, "name", "", "agent name to register (default: hostname)")
	return cmd
}
