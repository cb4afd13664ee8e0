package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rfielding/modalmu/models"
	"github.com/rfielding/modalmu/process"
)

func expand(arg string) (*process.Graph, error) {
	m, err := models.Load(arg)
	if err != nil {
		return nil, err
	}
	return process.Expand(m.System())
}

func newDotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dot <model>",
		Short: "Print the expanded state graph of a model in Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := expand(args[0])
			if err != nil {
				return err
			}
			return g.WriteDOT(cmd.OutOrStdout())
		},
	}
}

func newMermaidCmd() *cobra.Command {
	var fence bool
	cmd := &cobra.Command{
		Use:   "mermaid <model>",
		Short: "Print the expanded state graph of a model as a Mermaid state diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := expand(args[0])
			if err != nil {
				return err
			}
			return writeMermaid(cmd.OutOrStdout(), g, fence)
		},
	}
	cmd.Flags().BoolVar(&fence, "fence", false, "wrap the diagram in a markdown code fence")
	return cmd
}

func writeMermaid(w io.Writer, g *process.Graph, fence bool) error {
	if fence {
		fmt.Fprintln(w, "```mermaid")
	}
	if err := g.WriteMermaid(w); err != nil {
		return err
	}
	if fence {
		fmt.Fprintln(w, "```")
	}
	return nil
}
