package store

import (
	"context"
	"testing"
)

func TestWriteRun_Basic(t *testing.T) {
	s := createTestStore(t)
	run := createTestRun("run-1")
	run.Op = "add"
	run.DriverAttributes = []string{"iree.module.export"}
	mustWriteRun(t, s, run)

	var mode, op, attrs, started string
	err := s.db.QueryRow(`
		SELECT mode, op_filter, driver_attributes, started_at FROM runs WHERE id = ?
	`, run.ID).Scan(&mode, &op, &attrs, &started)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if mode != "low-level" {
		t.Errorf("mode = %q, want low-level", mode)
	}
	if op != "add" {
		t.Errorf("op_filter = %q, want add", op)
	}
	if attrs != `["iree.module.export"]` {
		t.Errorf("driver_attributes = %q", attrs)
	}
	if started != "2026-01-02T03:04:05Z" {
		t.Errorf("started_at = %q", started)
	}
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	run := createTestRun("run-1")
	mustWriteRun(t, s, run)

	run.Mode = "symbolic-assertion"
	mustWriteRun(t, s, run)

	var count int
	var mode string
	if err := s.db.QueryRow("SELECT COUNT(*), MAX(mode) FROM runs").Scan(&count, &mode); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if mode != "low-level" {
		t.Errorf("mode = %q, first write should win", mode)
	}
}

func TestWriteOutcome_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustWriteRun(t, s, createTestRun("run-1"))

	o := Outcome{
		RunID:     "run-1",
		Seq:       0,
		Op:        "add",
		Test:      "add_1x3_f32",
		Status:    StatusFailed,
		ErrorCode: "E203",
		Message:   "unsupported type",
	}
	if err := s.WriteOutcome(ctx, o); err != nil {
		t.Fatalf("WriteOutcome() failed: %v", err)
	}

	var status, code string
	err := s.db.QueryRow(`
		SELECT status, error_code FROM outcomes WHERE run_id = ? AND seq = ?
	`, "run-1", 0).Scan(&status, &code)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if status != "failed" || code != "E203" {
		t.Errorf("got (%q, %q), want (failed, E203)", status, code)
	}
}

func TestWriteOutcome_InvalidStatus(t *testing.T) {
	s := createTestStore(t)
	mustWriteRun(t, s, createTestRun("run-1"))

	err := s.WriteOutcome(context.Background(), Outcome{RunID: "run-1", Status: "pending"})
	if err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestWriteOutcome_MissingRun(t *testing.T) {
	s := createTestStore(t)

	err := s.WriteOutcome(context.Background(), Outcome{RunID: "nope", Status: StatusSuccess})
	if err == nil {
		t.Error("expected foreign key error")
	}
}

func TestWriteOutcome_FirstWins(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustWriteRun(t, s, createTestRun("run-1"))

	first := Outcome{RunID: "run-1", Seq: 3, Op: "add", Test: "t", Status: StatusSuccess, Output: "/out/t.mlir"}
	second := first
	second.Status = StatusFailed
	if err := s.WriteOutcome(ctx, first); err != nil {
		t.Fatalf("WriteOutcome() failed: %v", err)
	}
	if err := s.WriteOutcome(ctx, second); err != nil {
		t.Fatalf("second WriteOutcome() failed: %v", err)
	}

	outcomes, err := s.ReadOutcomes(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadOutcomes() failed: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Status != StatusSuccess {
		t.Errorf("outcomes = %+v, want single success", outcomes)
	}
}
