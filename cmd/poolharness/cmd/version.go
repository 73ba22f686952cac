package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// NewVersionCommand prints the build version and VCS revision the way
// the original harness printed its build-version/git-hash banner,
// sourced from Go's own build info instead of a generated header.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version and VCS revision",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "poolharness: build info unavailable")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "poolharness %s\n", info.Main.Version)

			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					fmt.Fprintf(cmd.OutOrStdout(), "revision: %s\n", setting.Value)
				case "vcs.time":
					fmt.Fprintf(cmd.OutOrStdout(), "built:    %s\n", setting.Value)
				case "vcs.modified":
					fmt.Fprintf(cmd.OutOrStdout(), "dirty:    %s\n", setting.Value)
				}
			}

			return nil
		},
	}
}
