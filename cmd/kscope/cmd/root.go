package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/woozymasta/kscope"
)

// app holds state shared by all subcommands after flag parsing.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	log   *slog.Logger
	cfg   *kscope.Config
	table *kscope.Table
	style styler
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "kscope",
		Short: "Tokenizer, parser and formatter for a minimal expression language",
		Long: `kscope reads source made of function definitions, extern declarations
and top-level expressions, and reports the parsed forms.

Operators and their precedences come from the built-in table
('<' 100, '+' 200, '-' 200, '*' 300) extended by --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newFmtCmd(a),
		newReplCmd(a),
		newOpsCmd(a),
		newVersionCmd(),
	)

	return root
}

// setup configures logging and loads the configuration file.
func (a *app) setup(stderr io.Writer) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	a.style = newStyler(!a.noColor && os.Getenv("NO_COLOR") == "")

	a.cfg = &kscope.Config{}
	if a.cfgFile != "" {
		cfg, err := kscope.LoadConfig(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.log.Debug("config loaded", "path", a.cfgFile, "operators", len(cfg.Operators))
	}

	table, err := a.cfg.Table()
	if err != nil {
		return err
	}
	a.table = table

	return nil
}

// parseOptions returns parser options from the configuration.
func (a *app) parseOptions() *kscope.ParseOptions {
	return a.cfg.ParseOptions()
}

// formatOptions returns writer options from the configuration.
func (a *app) formatOptions() *kscope.FormatOptions {
	return a.cfg.FormatOptions(a.table)
}
