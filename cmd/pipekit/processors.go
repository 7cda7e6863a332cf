package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asterion-dev/pipekit/kernels"
	"github.com/asterion-dev/pipekit/processor"
)

// NewProcessorsCommand creates the processors command.
func NewProcessorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "processors",
		Short: "List the built-in processors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := processor.NewRegistry()
			kernels.Register(reg)
			for _, id := range reg.List() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
