// Package cmd provides the CLI commands for quote-engine.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"equipment-quote/core/engine"
	"equipment-quote/core/output"
	"equipment-quote/internal/config"
	"equipment-quote/internal/logging"
)

// Version is the CLI version, overridable with -ldflags "-X equipment-quote/cmd/cli/cmd.Version=..."
var Version = "0.1.0"

// app carries state shared by every subcommand of one invocation
type app struct {
	cfgFile string
	envFile string
	verbose bool
	format  string

	cfg    *config.Config
	logger *zap.Logger
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree, so tests can run commands in isolation.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "quote-engine",
		Short: "Price heavy-equipment rentals and build project quotes",
		Long: `quote-engine prices heavy-equipment rentals from a rate catalog.

It resolves free-text equipment descriptions to rate tiers, prices single
rental lines, and aggregates multi-equipment project quotes with fees,
tax and a deposit schedule.

Examples:
  quote-engine price "50-ton mobile crane" --days 10 --operator
  quote-engine quote project.json --format markdown
  quote-engine catalog --match "boom lift 60ft"`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync(a.logger)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.quote-engine.json)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file with QUOTE_* overrides")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVarP(&a.format, "format", "f", "", "output format (cli, json, markdown)")

	root.AddCommand(
		newPriceCommand(a),
		newQuoteCommand(a),
		newCatalogCommand(a),
		newConfigCommand(a),
		newVersionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.envFile); err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("path", path),
		zap.String("catalog", cfg.CatalogPath),
	)
	return nil
}

func (a *app) engine() (*engine.Engine, error) {
	return a.cfg.NewEngine(a.logger)
}

// formatter resolves the --format flag, falling back to the configured default
func (a *app) formatter() (output.Formatter, error) {
	name := a.format
	if name == "" {
		name = a.cfg.Output.DefaultFormat
	}
	f, err := output.NewRegistry().Lookup(name)
	if err != nil {
		return nil, err
	}
	if cli, ok := f.(*output.CLIFormatter); ok {
		cli.ShowLineage = a.cfg.Output.ShowLineage
	}
	return f, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quote-engine version %s\n", Version)
		},
	}
}

func writeln(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}
