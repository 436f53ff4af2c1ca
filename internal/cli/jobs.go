package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hanactl/internal/config"
	"hanactl/internal/models"
)

func newJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and manage individual transfer jobs",
	}
	cmd.AddCommand(newJobsListCmd())
	cmd.AddCommand(newJobsCreateCmd())
	cmd.AddCommand(newJobsDeleteCmd())
	return cmd
}

func newJobsListCmd() *cobra.Command {
	var since, until string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transfer jobs in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client, err := loadClient(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			jobs, err := client.ListJobs(ctx, since, until, limit)
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}
			fmt.Printf("Found %d job(s):\n", len(jobs))
			for _, j := range jobs {
				fmt.Printf("  %s  %-8s  %s  %d/%d bytes  created %s\n",
					j.ID, j.State, j.Name, j.BytesMoved, j.BytesTotal,
					j.CreatedAt().Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "earliest date for the window, e.g. 2025-01-01")
	cmd.Flags().StringVar(&until, "until", "", "latest date for the window, e.g. 2025-12-31")
	cmd.Flags().IntVar(&limit, "limit", 100, "page size")
	return cmd
}

func newJobsCreateCmd() *cobra.Command {
	var name, source, target string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a transfer job",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			client, err := loadClient(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			job, err := client.CreateJob(ctx, models.JobSpec{Name: name, Source: source, Target: target})
			if err != nil {
				return err
			}
			fmt.Printf("Created job %s (%s)\n", job.ID, job.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "job name")
	cmd.Flags().StringVar(&source, "source", "", "source locator (optional)")
	cmd.Flags().StringVar(&target, "target", "", "target locator (optional)")
	return cmd
}

func newJobsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a single transfer job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client, err := loadClient(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := client.DeleteJob(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted job %s\n", args[0])
			return nil
		},
	}
}
