package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asterion-dev/pipekit/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	short := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Short())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
