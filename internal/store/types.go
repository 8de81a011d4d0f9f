package store

import "time"

// Status is the terminal state of one test case.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Run is one batch invocation.
type Run struct {
	ID               string
	Mode             string
	Namespace        string
	ReferenceDir     string
	OutDir           string
	Op               string
	DriverAttributes []string
	ToolVersion      string
	StartedAt        time.Time
}

// RunSummary is a run with its outcome counts.
type RunSummary struct {
	Run
	Succeeded int
	Failed    int
}

// Outcome is the result of generating one test case.
type Outcome struct {
	RunID string
	// Seq is the discovery index of the case within its run.
	Seq       int64
	Op        string
	Test      string
	Status    Status
	ErrorCode string
	Message   string
	// Output is the path of the generated file, empty on failure.
	Output string
}
