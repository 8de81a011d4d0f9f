package suite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"goa.design/clue/log"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/tosa2mlir/internal/array"
	"github.com/roach88/tosa2mlir/internal/compiler"
	"github.com/roach88/tosa2mlir/internal/harness"
	"github.com/roach88/tosa2mlir/internal/ir"
	"github.com/roach88/tosa2mlir/internal/store"
)

// Options configures a batch run.
type Options struct {
	Mode             harness.Mode
	Namespace        string
	DriverAttributes []string

	// OutDir receives one <test>.mlir file per successful case.
	OutDir string

	// Op restricts discovery to one operator directory.
	Op string

	// Limit caps the number of cases processed, in discovery order.
	// Zero means no limit.
	Limit int

	// Workers bounds concurrent cases. Zero means runtime.NumCPU().
	Workers int
}

// Report is the result of a batch run. Outcomes are in discovery order.
type Report struct {
	RunID     string
	Outcomes  []store.Outcome
	Succeeded int
	Failed    int
}

// Runner executes batch runs. A nil ledger disables recording.
type Runner struct {
	opts   Options
	ledger *store.Store
	ids    IDGenerator
	now    func() time.Time
}

// RunnerOption allows configuration of runner parameters.
type RunnerOption func(*Runner)

// WithClock overrides the run start timestamp source.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner. ids defaults to UUIDv7Generator when nil.
func NewRunner(opts Options, ledger *store.Store, ids IDGenerator, options ...RunnerOption) *Runner {
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	if opts.Namespace == "" {
		opts.Namespace = compiler.DefaultNamespace
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	r := &Runner{opts: opts, ledger: ledger, ids: ids, now: time.Now}
	for _, o := range options {
		o(r)
	}
	return r
}

// Run discovers the cases under refDir and generates a test file for each.
//
// A failing case is recorded and does not stop the run. Run itself fails
// only on discovery errors, ledger errors or context cancellation.
func (r *Runner) Run(ctx context.Context, refDir string) (Report, error) {
	if r.opts.Mode != harness.ModeLowLevel && r.opts.Mode != harness.ModeSymbolicAssertion {
		return Report{}, fmt.Errorf("run: %s is not a valid mode", r.opts.Mode)
	}

	cases, err := Discover(refDir, r.opts.Op)
	if err != nil {
		return Report{}, err
	}
	if r.opts.Limit > 0 && len(cases) > r.opts.Limit {
		cases = cases[:r.opts.Limit]
	}

	report := Report{RunID: r.ids.Generate()}
	ctx = log.With(ctx, log.KV{K: "run", V: report.RunID})
	log.Info(ctx,
		log.KV{K: "msg", V: "batch started"},
		log.KV{K: "mode", V: r.opts.Mode.String()},
		log.KV{K: "cases", V: len(cases)},
		log.KV{K: "workers", V: r.opts.Workers},
	)

	if r.ledger != nil {
		run := store.Run{
			ID:               report.RunID,
			Mode:             r.opts.Mode.String(),
			Namespace:        r.opts.Namespace,
			ReferenceDir:     refDir,
			OutDir:           r.opts.OutDir,
			Op:               r.opts.Op,
			DriverAttributes: r.opts.DriverAttributes,
			ToolVersion:      ir.ToolVersion,
			StartedAt:        r.now(),
		}
		if err := r.ledger.WriteRun(ctx, run); err != nil {
			return Report{}, err
		}
	}

	outcomes := make([]store.Outcome, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for _, c := range cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := r.runCase(gctx, report.RunID, c)
			outcomes[c.Seq] = o
			if r.ledger != nil {
				return r.ledger.WriteOutcome(gctx, o)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report.Outcomes = outcomes
	for _, o := range outcomes {
		if o.Status == store.StatusSuccess {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	log.Info(ctx,
		log.KV{K: "msg", V: "batch finished"},
		log.KV{K: "succeeded", V: report.Succeeded},
		log.KV{K: "failed", V: report.Failed},
	)
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, runID string, c Case) store.Outcome {
	o := store.Outcome{RunID: runID, Seq: int64(c.Seq), Op: c.Op, Test: c.Test}
	out := filepath.Join(r.opts.OutDir, c.Test+".mlir")

	var err error
	if c.Duplicate {
		err = fmt.Errorf("%s/%s: %w", c.Op, c.Test, ErrDuplicateTest)
	} else {
		err = r.generate(c, out)
	}
	if err != nil {
		o.Status = store.StatusFailed
		o.ErrorCode = compiler.Code(err)
		if errors.Is(err, ErrDuplicateTest) {
			o.ErrorCode = ErrCodeDuplicateTest
		}
		o.Message = err.Error()
		log.Warn(ctx,
			log.KV{K: "msg", V: "case failed"},
			log.KV{K: "op", V: c.Op},
			log.KV{K: "test", V: c.Test},
			log.KV{K: "code", V: o.ErrorCode},
			log.KV{K: "err", V: err.Error()},
		)
		return o
	}

	o.Status = store.StatusSuccess
	o.Output = out
	log.Debug(ctx,
		log.KV{K: "msg", V: "case generated"},
		log.KV{K: "op", V: c.Op},
		log.KV{K: "test", V: c.Test},
		log.KV{K: "output", V: out},
	)
	return o
}

// generate renders one case and writes it to out. Nothing is written
// unless the whole file renders.
func (r *Runner) generate(c Case, out string) error {
	text, err := compiler.TranslateFile(filepath.Join(c.Dir, GraphFile), compiler.Options{Namespace: r.opts.Namespace})
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}
	inputs, results, err := array.LoadDir(c.Dir)
	if err != nil {
		return fmt.Errorf("load arrays: %w", err)
	}
	gen := harness.Generator{Mode: r.opts.Mode, DriverAttributes: r.opts.DriverAttributes}
	test, err := gen.Generate(text, inputs, results)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return WriteArtifact(out, test)
}
