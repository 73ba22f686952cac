package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand enumerates the available scenario names.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scenario names",
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, s := range scenarios {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-34s %s\n", i+1, s.name, s.desc)
			}
			return nil
		},
	}
}
