package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tosa2mlir/internal/store"
	"github.com/roach88/tosa2mlir/internal/suite"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	settingsFlags
	OutDir string

	// ids overrides run id generation in tests.
	ids suite.IDGenerator
}

// BatchResult is the JSON payload of the batch command.
type BatchResult struct {
	RunID     string          `json:"run_id"`
	Ledger    string          `json:"ledger"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Outcomes  []OutcomeRecord `json:"outcomes"`
}

// OutcomeRecord is the JSON form of one case outcome.
type OutcomeRecord struct {
	Seq       int64  `json:"seq"`
	Op        string `json:"op"`
	Test      string `json:"test"`
	Status    string `json:"status"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
	Output    string `json:"output,omitempty"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <reference-dir>",
		Short: "Generate MLIR tests for every case of a reference model checkout",
		Long: `Generate one MLIR test per case found under <reference-dir>/vtest/<op>/<test>.

Each case is translated and generated independently; a failing case is
reported and recorded without stopping the run. Outcomes are recorded in
the run ledger under a new run id.

Exit codes:
  0 - All cases generated
  1 - One or more cases failed
  2 - Command error (missing directory, ledger error, etc.)

Examples:
  tosa2mlir batch ./reference_model --out-dir ./tests --mode low-level
  tosa2mlir batch ./reference_model --out-dir ./tests --mode iree --op add --limit 100`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "directory receiving <test>.mlir files (required)")
	_ = cmd.MarkFlagRequired("out-dir")
	cmd.Flags().StringVar(&opts.v.Op, "op", "", "only generate cases of this operator")
	cmd.Flags().IntVar(&opts.v.Limit, "limit", 0, "maximum number of cases (0 = no limit)")
	cmd.Flags().IntVar(&opts.v.Workers, "workers", 0, "concurrent cases (0 = number of CPUs)")
	opts.mode(cmd)
	opts.namespace(cmd)
	opts.attributes(cmd)
	opts.ledger(cmd)

	return cmd
}

func runBatch(opts *BatchOptions, refDir string, cmd *cobra.Command) error {
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

	cases, err := suite.Discover(refDir, cfg.Op)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeNotFound+": no test cases", err)
	}
	formatter.VerboseLog("Discovered %d case(s) under %s", len(cases), refDir)

	ledger, err := store.Open(cfg.Ledger)
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeLedger+": failed to open ledger", err)
	}
	defer ledger.Close()

	runner := suite.NewRunner(suite.Options{
		Mode:             mode,
		Namespace:        cfg.Namespace,
		DriverAttributes: cfg.DriverAttributes,
		OutDir:           opts.OutDir,
		Op:               cfg.Op,
		Limit:            cfg.Limit,
		Workers:          cfg.Workers,
	}, ledger, opts.ids)

	report, err := runner.Run(ctx, refDir)
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return WrapExitError(ExitCommandError, "batch run failed", err)
	}

	if opts.Format == "json" {
		if err := outputBatchJSON(formatter, cfg.Ledger, report); err != nil {
			return err
		}
	} else {
		outputBatchText(formatter, report)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d case(s) failed", report.Failed, len(report.Outcomes)))
	}
	return nil
}

func outputBatchJSON(f *OutputFormatter, ledger string, report suite.Report) error {
	result := BatchResult{
		RunID:     report.RunID,
		Ledger:    ledger,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Outcomes:  make([]OutcomeRecord, len(report.Outcomes)),
	}
	for i, o := range report.Outcomes {
		result.Outcomes[i] = outcomeRecord(o)
	}
	return f.Success(result)
}

func outcomeRecord(o store.Outcome) OutcomeRecord {
	return OutcomeRecord{
		Seq:       o.Seq,
		Op:        o.Op,
		Test:      o.Test,
		Status:    string(o.Status),
		ErrorCode: o.ErrorCode,
		Message:   o.Message,
		Output:    o.Output,
	}
}

func outputBatchText(f *OutputFormatter, report suite.Report) {
	for _, o := range report.Outcomes {
		if o.Status == store.StatusSuccess {
			fmt.Fprintf(f.Writer, "Success: %s\n", o.Test)
			continue
		}
		fmt.Fprintf(f.Writer, "Failed: %s [%s]\n", o.Test, codeOrGeneric(o.ErrorCode))
		if f.Verbose {
			fmt.Fprintf(f.Writer, "  %s\n", strings.ReplaceAll(o.Message, "\n", "\n  "))
		}
	}
	fmt.Fprintln(f.Writer)
	fmt.Fprintf(f.Writer, "Run %s: %d succeeded, %d failed\n", report.RunID, report.Succeeded, report.Failed)
}

func codeOrGeneric(code string) string {
	if code == "" {
		return ErrCodeGeneric
	}
	return code
}
