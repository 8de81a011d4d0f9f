package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"goa.design/clue/log"

	"github.com/roach88/tosa2mlir/internal/config"
	"github.com/roach88/tosa2mlir/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional config file (.yaml, .yml or .cue)

	// file holds the loaded config file, if any.
	file config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tosa2mlir CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "tosa2mlir",
		Short:   "tosa2mlir - TOSA flatbuffer to MLIR translator",
		Long:    "Translates TOSA flatbuffer graphs to textual MLIR and generates executable MLIR tests from reference model outputs.",
		Version: ir.ToolVersion,
		// Subcommands report their own errors; main prints the rest.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (.yaml, .yml or .cue)")

	// Add subcommands
	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewGenTestCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

// prepare validates the global flags and loads the config file. It runs
// before every subcommand and is idempotent.
func (o *RootOptions) prepare() error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	if o.Config == "" {
		o.file = config.Config{}
		return nil
	}
	cfg, err := config.Load(o.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeConfig+": failed to load config", err)
	}
	o.file = cfg
	return nil
}

// logContext returns the command context carrying a clue logger. Logs go
// to stderr so they never mix with command output; JSON output selects
// JSON logs.
func (o *RootOptions) logContext(cmd *cobra.Command) context.Context {
	format := log.FormatText
	switch {
	case o.Format == "json":
		format = log.FormatJSON
	case log.IsTerminal():
		format = log.FormatTerminal
	}
	ctx := log.Context(cmd.Context(), log.WithFormat(format), log.WithOutput(cmd.ErrOrStderr()))
	if o.Verbose {
		ctx = log.Context(ctx, log.WithDebug())
		log.Debugf(ctx, "debug logs enabled")
	}
	return ctx
}

// formatter returns the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
