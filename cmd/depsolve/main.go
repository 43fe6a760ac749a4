// Command depsolve resolves packages of a YAML package index.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
)

// errUnresolvable is returned when the root package has no consistent selection.
var errUnresolvable = errors.New("no consistent selection found")

type globalFlags struct {
	indexPath string
	verbosity int
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "depsolve",
		Short: "Resolve package dependencies",
		Long: `Resolve packages of a YAML package index into consistent dependency paths.

Examples:
  depsolve solve --index index.yaml app@1.0.0
  depsolve solve --index index.yaml app@1.0.0 --format mermaid
  depsolve graph --index index.yaml app@1.0.0`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.indexPath, "index", "", "Path of the YAML package index")
	cmd.PersistentFlags().IntVarP(&flags.verbosity, "verbosity", "v", 0,
		"Log verbosity: 1 logs conflicts, 2 logs every visited node")
	_ = cmd.MarkPersistentFlagRequired("index")

	cmd.AddCommand(newSolveCommand(flags), newGraphCommand(flags))
	return cmd
}

// newLogger writes structured log lines to w.
func newLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}
