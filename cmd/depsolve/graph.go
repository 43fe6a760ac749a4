package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"go.arcalot.io/depsolve"
	"go.arcalot.io/depsolve/internal/index"
	"go.arcalot.io/depsolve/repository"
)

func newGraphCommand(global *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "graph ROOT",
		Short: "Print the raw dependency graph of a package",
		Long: `Print every package reachable from ROOT (name@version) together with all of its
candidate dependencies, without checking them for consistency.

Examples:
  depsolve graph --index index.yaml app@1.0.0
  depsolve graph --index index.yaml app@1.0.0 --format mermaid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, global, format, args[0])
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, mermaid")
	return cmd
}

func runGraph(cmd *cobra.Command, global *globalFlags, format string, rawRoot string) error {
	if format != "text" && format != "mermaid" {
		return fmt.Errorf("unsupported format %q", format)
	}
	root, err := depsolve.ParseVersioned(rawRoot)
	if err != nil {
		return err
	}
	idx, err := index.LoadFile(global.indexPath)
	if err != nil {
		return err
	}
	g, err := idx.Repository().BuildGraph(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "mermaid" {
		_, err := fmt.Fprint(out, g.Mermaid())
		return err
	}
	nodes := g.ListNodes()
	for _, id := range slices.SortedFunc(maps.Keys(nodes), depsolve.Versioned.Compare) {
		if _, err := fmt.Fprintln(out, formatRawNode(nodes[id])); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "cycles: %t\n", g.HasCycles())
	return err
}

func formatRawNode(n repository.RawNode[depsolve.Versioned]) string {
	outbound := n.ListOutboundConnections()
	if len(outbound) == 0 {
		return n.ID().String()
	}
	targets := make([]string, len(outbound))
	for i, target := range outbound {
		targets[i] = target.ID().String()
	}
	return fmt.Sprintf("%s -> %s", n.ID(), strings.Join(targets, ", "))
}
