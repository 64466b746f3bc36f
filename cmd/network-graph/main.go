package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	homelab "github.com/kataras/homelab-tools"
	"github.com/kataras/homelab-tools/pkg/diagram"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errReported = errors.New("reported")

// openImage is switched off by tests.
var openImage = true

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := &cobra.Command{
		Use:           "network-graph",
		Short:         "Render the home hybrid cloud architecture diagram",
		Long:          "Renders the home network and hybrid cloud topology to " + homelab.DefaultDiagramName + ".png in the current directory and opens it.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := &cliLogger{w: stderr}

			result, err := homelab.RenderDiagram(cmd.Context(), homelab.DiagramOptions{
				Open:   openImage,
				Logger: logger,
			})
			if err != nil {
				logger.Errorf("%v", err)
				return errReported
			}

			color.New(color.FgGreen).Fprintf(stdout, "✓ Diagram written to %s (%d bytes)\n", result.Path, result.Size)
			return nil
		},
	}

	dotCmd := &cobra.Command{
		Use:   "dot",
		Short: "Print the Graphviz DOT source of the diagram",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(stdout, diagram.ToDOT(diagram.HybridCloud()))
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "network-graph version %s\n", homelab.Version)
		},
	}

	rootCmd.AddCommand(dotCmd, versionCmd)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

type cliLogger struct {
	w io.Writer
}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, "⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(l.w, "✗ "+format+"\n", args...)
}
