package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuiltAt   string `json:"built_at"`
	GoVersion string `json:"go_version"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildInfo{Version: Version, Commit: CommitSHA, BuiltAt: BuildDate, GoVersion: runtime.Version()}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tablefinder %s\n  commit: %s\n  built:  %s\n  go:     %s\n",
				info.Version, info.Commit, info.BuiltAt, info.GoVersion)
			return nil
		},
	}
}
