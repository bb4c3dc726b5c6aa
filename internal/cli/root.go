package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pordosol/pordosol-ls/internal/config"
	"github.com/pordosol/pordosol-ls/internal/server"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var version = "0.1.0"

type options struct {
	verbose int
	logFile string
	root    string
}

// config loads the workspace configuration the same way the server does on
// initialize: defaults, then .pordosolrc, then .env and the environment.
func (o *options) config() *config.Config {
	cfg := config.NewConfig()
	cfg.WorkspaceRoot = o.root
	cfg.Load()
	return cfg
}

func (o *options) configureLogging() {
	var path *string
	if o.logFile != "" {
		path = &o.logFile
	}
	commonlog.Configure(1+o.verbose, path)
}

// NewRootCommand builds the command tree. Without a subcommand the language
// server is served over stdio.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "pordosol-ls",
		Short:         "Language server for Por Do Sol",
		Long:          "Language server, checker and formatter for the Por Do Sol language.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.configureLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.NewServer(opts.config()).Run(debug)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbose, "verbose", "v", "Increase log verbosity (repeatable).")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr.")
	flags.StringVar(&opts.root, "root", ".", "Workspace root holding .pordosolrc and .env.")

	// Editors pass --stdio; it is the only transport.
	rootCmd.Flags().Bool("stdio", true, "Serve over stdin and stdout.")
	rootCmd.Flags().Lookup("stdio").Hidden = true
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Log every protocol message.")

	rootCmd.AddCommand(newCheckCommand(opts), newFmtCommand(opts))
	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
