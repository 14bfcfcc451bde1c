package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

var (
	outputJSON bool
	tokenFlag  string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tablefinder",
		Short:        "Find and book restaurant tables near a requested time",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&outputJSON, "json", false, "print JSON instead of a table")
	root.PersistentFlags().StringVar(&tokenFlag, "token", "", "backend access token (defaults to BACKEND_TOKEN)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newKeysCmd())
	root.AddCommand(newServerCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newReservationsCmd())
	root.AddCommand(newManagerCmd())
	root.AddCommand(newAdminCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
