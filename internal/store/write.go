package store

import (
	"context"
	"fmt"
	"time"
)

// WriteRun inserts a run record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	attrs, err := marshalAttributes(run.DriverAttributes)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, mode, namespace, reference_dir, out_dir, op_filter, driver_attributes, tool_version, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Mode,
		run.Namespace,
		run.ReferenceDir,
		run.OutDir,
		run.Op,
		attrs,
		run.ToolVersion,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteOutcome inserts one case outcome.
// Uses ON CONFLICT(run_id, seq) DO NOTHING: the first outcome recorded for a
// case wins.
//
// Note: The run referenced by RunID must exist (foreign key constraint).
func (s *Store) WriteOutcome(ctx context.Context, o Outcome) error {
	if o.Status != StatusSuccess && o.Status != StatusFailed {
		return fmt.Errorf("write outcome: invalid status %q", o.Status)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes
		(run_id, seq, op, test, status, error_code, message, output)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`,
		o.RunID,
		o.Seq,
		o.Op,
		o.Test,
		string(o.Status),
		o.ErrorCode,
		o.Message,
		o.Output,
	)
	if err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	return nil
}
