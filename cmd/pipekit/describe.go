package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/asterion-dev/pipekit/graph"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <pipeline.yml>",
		Short: "Validate a pipeline definition and print its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(rootOpts); err != nil {
				return err
			}
			p, err := graph.ParseFile(args[0])
			if err != nil {
				return err
			}
			if err := graph.Validate(p); err != nil {
				return err
			}
			describePipeline(cmd, p)
			return nil
		},
	}
}

func describePipeline(cmd *cobra.Command, p *graph.Pipeline) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pipeline: %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(out, "%s\n", p.Description)
	}

	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tPROCESSOR\tINPUTS\tOUTPUTS")
	for _, step := range p.Steps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			step.ID, step.Processor, formatInputs(step.Inputs), formatOutputs(step.Outputs))
	}
	tw.Flush()
}

func formatInputs(inputs []graph.Input) string {
	s := ""
	for i, in := range inputs {
		if i > 0 {
			s += ", "
		}
		s += in.Name + "<-" + in.Source
		if in.Collection && in.Mode != "" {
			s += "(" + in.Mode + ")"
		}
	}
	return s
}

func formatOutputs(outputs []graph.Output) string {
	s := ""
	for i, out := range outputs {
		if i > 0 {
			s += ", "
		}
		s += out.Name + ":" + string(out.Type)
	}
	return s
}
