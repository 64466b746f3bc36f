package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	homelab "github.com/kataras/homelab-tools"
	"github.com/kataras/homelab-tools/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errReported is returned once the failure has already been logged.
var errReported = errors.New("reported")

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code. Only the
// token is ever written to stdout.
func execute(args []string, stdout, stderr io.Writer) int {
	var (
		verbose bool
		secure  bool
	)

	rootCmd := &cobra.Command{
		Use:   "cwp-token",
		Short: "Print an API token for an access key pair",
		Long: "Reads an access key pair and the console URL from the environment, authenticates once " +
			"and prints the issued token. Exits with status 1 on any failure.\n\n" + config.Describe(&config.CWP{}),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := &cliLogger{w: stderr}

			if err := config.LoadDotEnv(""); err != nil {
				logger.Warnf("%v", err)
			}

			cfg, err := config.LoadCWP()
			if err != nil {
				logger.Errorf("%v", err)
				return errReported
			}

			token, err := homelab.GenerateToken(cmd.Context(), homelab.TokenOptions{
				URL:          cfg.URL,
				AccessKey:    cfg.AccessKey,
				AccessSecret: cfg.AccessSecret,
				Secure:       secure,
				Verbose:      verbose,
				Logger:       logger,
			})
			if err != nil {
				logger.Errorf("Could not generate token. Exiting.")
				return errReported
			}

			fmt.Fprintln(stdout, token)
			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log the HTTP exchange to stderr")
	rootCmd.Flags().BoolVar(&secure, "secure", false, "Verify the console's TLS certificate")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "cwp-token version %s\n", homelab.Version)
		},
	}

	rootCmd.AddCommand(versionCmd)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stderr)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// cliLogger implements homelab.Logger with colored output on stderr.
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
