package main

import (
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"go.arcalot.io/depsolve"
	"go.arcalot.io/depsolve/internal/index"
)

type solveFlags struct {
	format      string
	concurrency int
	maxDepth    int
	metricsPath string
}

// solveOutput is the JSON form of a resolution.
type solveOutput struct {
	Root        string     `json:"root"`
	Satisfiable bool       `json:"satisfiable"`
	Paths       [][]string `json:"paths"`
	Cause       []string   `json:"cause"`
}

func newSolveCommand(global *globalFlags) *cobra.Command {
	flags := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve ROOT",
		Short: "Find every consistent dependency path of a package",
		Long: `Compile the package ROOT (name@version) and its dependencies from the index and print
every consistent path. When no path exists, the packages blamed for it are printed instead and
the command fails.

Examples:
  depsolve solve --index index.yaml app@1.0.0
  depsolve solve --index index.yaml app@1.0.0 --format json --concurrency 4
  depsolve solve --index index.yaml app@1.0.0 --max-depth 20 -v 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, global, flags, args[0])
		},
	}
	cmd.Flags().StringVar(&flags.format, "format", "text", "Output format: text, json, mermaid")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0,
		"Goroutines per branching point, 0 solves sequentially")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "Longest path to explore, 0 for no limit")
	cmd.Flags().StringVar(&flags.metricsPath, "metrics", "",
		"Write solver metrics in the Prometheus text format to this file")
	return cmd
}

func runSolve(cmd *cobra.Command, global *globalFlags, flags *solveFlags, rawRoot string) error {
	switch flags.format {
	case "text", "json", "mermaid":
	default:
		return fmt.Errorf("unsupported format %q", flags.format)
	}
	root, err := depsolve.ParseVersioned(rawRoot)
	if err != nil {
		return err
	}
	idx, err := index.LoadFile(global.indexPath)
	if err != nil {
		return err
	}
	node, err := idx.Repository().Compile(root)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), global.verbosity)
	opts := []depsolve.Option{
		depsolve.WithLogger(logger),
		depsolve.WithConcurrency(flags.concurrency),
		depsolve.WithMaxDepth(flags.maxDepth),
	}
	var registry *prometheus.Registry
	if flags.metricsPath != "" {
		registry = prometheus.NewRegistry()
		metrics, err := depsolve.NewMetrics(registry)
		if err != nil {
			return err
		}
		opts = append(opts, depsolve.WithMetrics(metrics))
	}

	res, err := depsolve.NewSolver[depsolve.Versioned](opts...).Solve(cmd.Context(), node)
	if err != nil {
		return err
	}
	if registry != nil {
		if err := prometheus.WriteToTextfile(flags.metricsPath, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if err := printResolved(cmd, flags.format, root, res); err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("%s: %w", root, errUnresolvable)
	}
	return nil
}

func printResolved(
	cmd *cobra.Command,
	format string,
	root depsolve.Versioned,
	res depsolve.Resolved[depsolve.Versioned],
) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		output := solveOutput{
			Root:        root.String(),
			Satisfiable: res.IsSuccess(),
			Paths:       make([][]string, len(res.Paths)),
			Cause:       []string{},
		}
		for i, p := range res.Paths {
			output.Paths[i] = identStrings(p.Idents())
		}
		output.Cause = append(output.Cause, identStrings(res.Cause.Idents())...)
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	case "mermaid":
		_, err := fmt.Fprint(out, res.Mermaid())
		return err
	default:
		if !res.IsSuccess() {
			_, err := fmt.Fprintf(out, "no consistent selection for %s, blamed: %s\n", root, res.Cause)
			return err
		}
		for _, p := range res.Paths {
			if _, err := fmt.Fprintln(out, p); err != nil {
				return err
			}
		}
		return nil
	}
}

func identStrings(ids []depsolve.Versioned) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}
