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

// errReported is returned once the failure has already been printed.
var errReported = errors.New("reported")

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	var (
		host       string
		token      string
		outputFile string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "plex-dump",
		Short: "Dump Plex movie and TV show metadata to JSON",
		Long: "Connects to a Plex Media Server, walks every movie and TV show library section and writes " +
			"the series-level metadata to a JSON file. Flags override the environment.\n\n" + config.Describe(&config.Plex{}),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)
			cyan := color.New(color.FgCyan)
			logger := &cliLogger{w: stderr}

			cyan.Fprintln(stdout, "\n🎬 Plex Library Dump")
			cyan.Fprintln(stdout, "====================")

			if err := config.LoadDotEnv(""); err != nil {
				logger.Warnf("%v", err)
			}

			cfg, err := config.LoadPlex()
			if err != nil {
				red.Fprintf(stderr, "Error: %v\n", err)
				return errReported
			}

			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Host = host
			}
			if flags.Changed("token") {
				cfg.Token = token
			}
			if flags.Changed("output") {
				cfg.OutputFile = outputFile
			}
			if err := config.Validate(cfg); err != nil {
				red.Fprintf(stderr, "Error: %v\n", err)
				return errReported
			}

			result, err := homelab.ExportLibrary(cmd.Context(), homelab.ExportOptions{
				Host:       cfg.Host,
				Token:      cfg.Token,
				OutputFile: cfg.OutputFile,
				Verbose:    verbose,
				Logger:     logger,
			})
			if err != nil {
				red.Fprintf(stderr, "\n❌ An error occurred: %v\n", err)
				red.Fprintln(stderr, "Please ensure your Plex token is correct and the server is running at the specified host.")
				return errReported
			}

			cyan.Fprintln(stdout, "\n📊 Export Summary:")
			fmt.Fprintf(stdout, "  • Server: %s\n", result.Server.FriendlyName)
			fmt.Fprintf(stdout, "  • Movies: %d\n", len(result.Library.Movies))
			fmt.Fprintf(stdout, "  • TV Shows: %d\n", len(result.Library.TVShows))

			green.Fprintf(stdout, "\n✅ Successfully dumped data to %s\n\n", result.OutputFile)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&host, "host", "H", "", "Plex server URL or host:port (env PLEX_HOST)")
	rootCmd.Flags().StringVarP(&token, "token", "t", "", "Plex authentication token (env PLEX_TOKEN)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output JSON file (env PLEX_OUTPUT_FILE)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every HTTP response")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "plex-dump version %s\n", homelab.Version)
		},
	}

	rootCmd.AddCommand(versionCmd)
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

// cliLogger implements homelab.Logger with colored terminal output.
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
