package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Execute() int {
	root := &cobra.Command{
		Use:   "hanactl",
		Short: "Authenticated CLI for the HANA data-transfer agent",
	}

	root.AddCommand(newLoginCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newPurgeCmd())
	root.AddCommand(newJobsCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckConfigCmd())
	root.AddCommand(newTestConnectionCmd())

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
