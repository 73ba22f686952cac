package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the poolharness command tree: one subcommand
// per named scenario group (list, run) plus version.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "poolharness",
		Short: "Exercise the fixed-pool allocator against its named scenarios",
		Long: `poolharness drives the scenarios a fixed-pool allocator is expected to
satisfy: allocation, coalescing, resize and the capacity boundary.`,
	}

	root.AddCommand(NewListCommand())
	root.AddCommand(NewRunCommand())
	root.AddCommand(NewVersionCommand())

	return root
}

// Execute runs the root command, exiting with status 1 on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
