package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tosa2mlir/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	settingsFlags
	RunID  string
	Failed bool // only list failed outcomes
}

// RunRecord is the JSON form of one ledger run.
type RunRecord struct {
	ID               string          `json:"id"`
	Mode             string          `json:"mode"`
	Namespace        string          `json:"namespace"`
	ReferenceDir     string          `json:"reference_dir"`
	OutDir           string          `json:"out_dir"`
	Op               string          `json:"op,omitempty"`
	DriverAttributes []string        `json:"driver_attributes"`
	ToolVersion      string          `json:"tool_version"`
	StartedAt        string          `json:"started_at"`
	Succeeded        int             `json:"succeeded"`
	Failed           int             `json:"failed"`
	Outcomes         []OutcomeRecord `json:"outcomes,omitempty"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show batch run history from the ledger",
		Long: `List the batch runs recorded in the ledger, oldest first, or show the
outcomes of one run in discovery order.

Examples:
  tosa2mlir runs
  tosa2mlir runs --ledger ./tests/tosa2mlir.db --run 0190b7e4-...
  tosa2mlir runs --run 0190b7e4-... --failed --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "show outcomes of this run")
	cmd.Flags().BoolVar(&opts.Failed, "failed", false, "with --run, only show failed outcomes")
	opts.ledger(cmd)

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg, err := opts.resolve(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	ctx := opts.logContext(cmd)

	// Reading must not create an empty ledger.
	if _, err := os.Stat(cfg.Ledger); err != nil {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("ledger not found: %s", cfg.Ledger), nil)
		return WrapExitError(ExitCommandError, ErrCodeNotFound+": ledger not found", err)
	}
	ledger, err := store.Open(cfg.Ledger)
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeLedger+": failed to open ledger", err)
	}
	defer ledger.Close()

	if opts.RunID != "" {
		return showRun(ctx, opts, formatter, ledger)
	}

	runs, err := ledger.ReadRuns(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeLedger+": failed to read runs", err)
	}

	if opts.Format == "json" {
		records := make([]RunRecord, len(runs))
		for i, r := range runs {
			records[i] = runRecord(r)
		}
		return formatter.Success(records)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%s  %s  %-18s  %d succeeded, %d failed  %s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Mode, r.Succeeded, r.Failed, r.ReferenceDir)
	}
	return nil
}

func showRun(ctx context.Context, opts *RunsOptions, formatter *OutputFormatter, ledger *store.Store) error {
	run, err := ledger.ReadRun(ctx, opts.RunID)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", opts.RunID), nil)
		return NewExitError(ExitCommandError, ErrCodeNotFound+": run not found")
	}
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeLedger+": failed to read run", err)
	}

	outcomes, err := ledger.ReadOutcomes(ctx, opts.RunID)
	if err != nil {
		_ = formatter.Error(ErrCodeLedger, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeLedger+": failed to read outcomes", err)
	}

	record := runRecord(run)
	record.Outcomes = []OutcomeRecord{}
	for _, o := range outcomes {
		if opts.Failed && o.Status != store.StatusFailed {
			continue
		}
		record.Outcomes = append(record.Outcomes, outcomeRecord(o))
	}

	if opts.Format == "json" {
		return formatter.Success(record)
	}

	fmt.Fprintf(formatter.Writer, "Run:        %s\n", record.ID)
	fmt.Fprintf(formatter.Writer, "Started:    %s\n", record.StartedAt)
	fmt.Fprintf(formatter.Writer, "Mode:       %s\n", record.Mode)
	fmt.Fprintf(formatter.Writer, "Namespace:  %s\n", record.Namespace)
	fmt.Fprintf(formatter.Writer, "Reference:  %s\n", record.ReferenceDir)
	fmt.Fprintf(formatter.Writer, "Output:     %s\n", record.OutDir)
	fmt.Fprintf(formatter.Writer, "Result:     %d succeeded, %d failed\n", record.Succeeded, record.Failed)
	fmt.Fprintln(formatter.Writer)
	for _, o := range record.Outcomes {
		line := fmt.Sprintf("%4d  %-7s  %s/%s", o.Seq, o.Status, o.Op, o.Test)
		if o.ErrorCode != "" {
			line += "  [" + o.ErrorCode + "]"
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}

func runRecord(r store.RunSummary) RunRecord {
	return RunRecord{
		ID:               r.ID,
		Mode:             r.Mode,
		Namespace:        r.Namespace,
		ReferenceDir:     r.ReferenceDir,
		OutDir:           r.OutDir,
		Op:               r.Op,
		DriverAttributes: r.DriverAttributes,
		ToolVersion:      r.ToolVersion,
		StartedAt:        r.StartedAt.UTC().Format(time.RFC3339),
		Succeeded:        r.Succeeded,
		Failed:           r.Failed,
	}
}
