package store

import (
	"context"
	"fmt"
	"time"
)

// ReadRun retrieves a single run by ID.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (RunSummary, error) {
	row := s.db.QueryRowContext(ctx, summaryQuery+`
		WHERE r.id = ?
		GROUP BY r.id
	`, id)
	return scanSummary(row)
}

// ReadRuns returns every run with its outcome counts, oldest first.
//
// Returns an empty slice (not nil) if the ledger has no runs.
func (s *Store) ReadRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, summaryQuery+`
		GROUP BY r.id
		ORDER BY r.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		run, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadOutcomes returns the outcomes of a run in discovery order.
//
// Returns an empty slice (not nil) if the run has no outcomes.
func (s *Store) ReadOutcomes(ctx context.Context, runID string) ([]Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, op, test, status, error_code, message, output
		FROM outcomes
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []Outcome{}
	for rows.Next() {
		var o Outcome
		var status string
		if err := rows.Scan(&o.RunID, &o.Seq, &o.Op, &o.Test, &status, &o.ErrorCode, &o.Message, &o.Output); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Status = Status(status)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

const summaryQuery = `
	SELECT r.id, r.mode, r.namespace, r.reference_dir, r.out_dir, r.op_filter,
		r.driver_attributes, r.tool_version, r.started_at,
		COALESCE(SUM(o.status = 'success'), 0),
		COALESCE(SUM(o.status = 'failed'), 0)
	FROM runs r
	LEFT JOIN outcomes o ON o.run_id = r.id
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (RunSummary, error) {
	var sum RunSummary
	var attrs, started string
	if err := row.Scan(
		&sum.ID, &sum.Mode, &sum.Namespace, &sum.ReferenceDir, &sum.OutDir, &sum.Op,
		&attrs, &sum.ToolVersion, &started, &sum.Succeeded, &sum.Failed,
	); err != nil {
		return RunSummary{}, fmt.Errorf("scan run: %w", err)
	}

	var err error
	if sum.DriverAttributes, err = unmarshalAttributes(attrs); err != nil {
		return RunSummary{}, err
	}
	if sum.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return RunSummary{}, fmt.Errorf("parse started_at: %w", err)
	}
	return sum, nil
}
