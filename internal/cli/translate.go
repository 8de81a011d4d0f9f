package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"goa.design/clue/log"

	"github.com/roach88/tosa2mlir/internal/compiler"
	"github.com/roach88/tosa2mlir/internal/suite"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	settingsFlags
	Output string // output file path
}

// TranslateResult is the JSON payload of the translate command.
type TranslateResult struct {
	Graph  string `json:"graph"`
	Output string `json:"output,omitempty"`
	IR     string `json:"ir,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <test-dir|graph.tosa>",
		Short: "Translate a TOSA flatbuffer graph to MLIR",
		Long: `Translate the entry block of a TOSA flatbuffer graph to a textual MLIR
function. A test directory argument reads its test.tosa.

Examples:
  tosa2mlir translate vtest/add/add_1x3_f32
  tosa2mlir translate model.tosa -o model.mlir
  tosa2mlir translate model.tosa --namespace tfl`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")
	opts.namespace(cmd)

	return cmd
}

func runTranslate(opts *TranslateOptions, arg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg, err := opts.resolve(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	ctx := opts.logContext(cmd)

	path, _, err := graphPath(arg)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeNotFound+": graph not found", err)
	}
	log.Debug(ctx, log.KV{K: "msg", V: "translating"}, log.KV{K: "graph", V: path}, log.KV{K: "namespace", V: cfg.Namespace})

	text, err := compiler.TranslateFile(path, compiler.Options{Namespace: cfg.Namespace})
	if err != nil {
		return translationFailure(formatter, "translation failed", err)
	}

	result := TranslateResult{Graph: path, Output: opts.Output}
	if opts.Output != "" {
		if err := suite.WriteArtifact(opts.Output, text); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed+": failed to write output", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
		if opts.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ Translated %s to %s\n", path, opts.Output)
		return nil
	}

	if opts.Format == "json" {
		result.IR = text
		return formatter.Success(result)
	}
	fmt.Fprint(formatter.Writer, text)
	return nil
}
