package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"goa.design/clue/log"

	"github.com/roach88/tosa2mlir/internal/array"
	"github.com/roach88/tosa2mlir/internal/compiler"
	"github.com/roach88/tosa2mlir/internal/harness"
	"github.com/roach88/tosa2mlir/internal/suite"
)

// GenTestOptions holds flags for the gentest command.
type GenTestOptions struct {
	*RootOptions
	settingsFlags
	IR     string // pre-translated IR file; translated on the fly when empty
	Output string // output file path
}

// GenTestResult is the JSON payload of the gentest command.
type GenTestResult struct {
	Mode    string `json:"mode"`
	Inputs  int    `json:"inputs"`
	Results int    `json:"results"`
	Output  string `json:"output,omitempty"`
	Test    string `json:"test,omitempty"`
}

// NewGenTestCommand creates the gentest command.
func NewGenTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenTestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gentest <test-dir>",
		Short: "Generate an MLIR test from a reference test directory",
		Long: `Generate an executable MLIR test file from a reference test directory.

The directory's input-*.npy arrays become constants passed to the entry
function; its result-*.npy arrays become the expected outputs. The IR is
read from --ir, or translated from the directory's test.tosa.

Modes:
  low-level            print results for FileCheck under mlir-cpu-runner
  symbolic-assertion   compare results with check.expect_*_const

Examples:
  tosa2mlir gentest vtest/add/add_1x3_f32 --mode low-level -o add.mlir
  tosa2mlir gentest vtest/add/add_1x3_f32 --mode iree --attr iree.module.export`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenTest(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.IR, "ir", "", "translated IR file (default: translate test.tosa)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")
	opts.mode(cmd)
	opts.namespace(cmd)
	opts.attributes(cmd)

	return cmd
}

func runGenTest(opts *GenTestOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg, err := opts.resolve(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	mode, err := requireMode(cfg)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidArgs, err.Error(), nil)
		return err
	}
	ctx := opts.logContext(cmd)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("test directory not found: %s", dir), nil)
		return NewExitError(ExitCommandError, ErrCodeNotFound+": test directory not found")
	}

	var text string
	if opts.IR != "" {
		data, err := os.ReadFile(opts.IR)
		if err != nil {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeNotFound+": IR file not found", err)
		}
		text = string(data)
	} else {
		text, err = compiler.TranslateFile(filepath.Join(dir, suite.GraphFile), compiler.Options{Namespace: cfg.Namespace})
		if err != nil {
			return translationFailure(formatter, "translation failed", err)
		}
	}

	inputs, results, err := array.LoadDir(dir)
	if err != nil {
		return translationFailure(formatter, "failed to load arrays", err)
	}
	log.Debug(ctx,
		log.KV{K: "msg", V: "generating test"},
		log.KV{K: "dir", V: dir},
		log.KV{K: "mode", V: mode.String()},
		log.KV{K: "inputs", V: len(inputs)},
		log.KV{K: "results", V: len(results)},
	)

	gen := harness.Generator{Mode: mode, DriverAttributes: cfg.DriverAttributes}
	test, err := gen.Generate(text, inputs, results)
	if err != nil {
		return translationFailure(formatter, "generation failed", err)
	}

	result := GenTestResult{Mode: mode.String(), Inputs: len(inputs), Results: len(results), Output: opts.Output}
	if opts.Output != "" {
		if err := suite.WriteArtifact(opts.Output, test); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed+": failed to write output", err)
		}
		if opts.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ Generated %s test %s (%d input(s), %d result(s))\n",
			mode, opts.Output, len(inputs), len(results))
		return nil
	}

	if opts.Format == "json" {
		result.Test = test
		return formatter.Success(result)
	}
	fmt.Fprint(formatter.Writer, test)
	return nil
}
