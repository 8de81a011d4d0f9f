package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tosa2mlir/internal/compiler"
	"github.com/roach88/tosa2mlir/internal/graph"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Graph  string                     `json:"graph"`
	Blocks int                        `json:"blocks"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <test-dir|graph.tosa>",
		Short: "Check a graph for problems without translating it",
		Long: `Check every block of a TOSA flatbuffer graph for the problems translation
would fail on: unknown operators, unsupported element types, attribute or
quantization payloads, and tensors used before definition.

Unlike translate, validate reports every problem instead of stopping at the
first one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, arg string, cmd *cobra.Command) error {
	if err := opts.prepare(); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	path, _, err := graphPath(arg)
	if err != nil {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("graph not found: %s", arg), nil)
	}

	g, err := graph.LoadFile(path)
	if err != nil {
		if code := compiler.Code(err); code != "" {
			return outputValidationErrors(formatter, path, 0, []compiler.ValidationError{{
				Operator: -1,
				Field:    "buffer",
				Message:  err.Error(),
				Code:     code,
			}})
		}
		return outputValidateError(formatter, ErrCodeGeneric, err.Error(), nil)
	}
	formatter.VerboseLog("Loaded %s: %d block(s)", path, g.BlocksLength())

	if errs := compiler.Validate(g); len(errs) > 0 {
		return outputValidationErrors(formatter, path, g.BlocksLength(), errs)
	}
	return outputValidateSuccess(formatter, path, g.BlocksLength())
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, path string, blocks int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Graph: path, Blocks: blocks})
	}

	fmt.Fprintf(formatter.Writer, "✓ Graph valid (%d block(s))\n", blocks)
	return nil
}

// outputValidateError outputs a single command error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs every validation problem.
func outputValidationErrors(formatter *OutputFormatter, path string, blocks int, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Graph:  path,
				Blocks: blocks,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s\n", err.Error())
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
