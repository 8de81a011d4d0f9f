package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// GraphFile is the graph file name inside a case directory.
const GraphFile = "test.tosa"

// ErrCodeDuplicateTest is the outcome code of a case whose test name is
// shared with a case of another op.
const ErrCodeDuplicateTest = "E006"

// ErrDuplicateTest marks cases whose <test>.mlir output would collide.
var ErrDuplicateTest = errors.New("test name shared by more than one op")

// Case is one reference test directory.
type Case struct {
	// Seq is the discovery index.
	Seq  int
	Op   string
	Test string
	Dir  string

	// Duplicate is set on every case whose test name also occurs under
	// another op. Outputs are named by test alone, so none of them is
	// generated.
	Duplicate bool
}

// Discover lists the cases under refDir/vtest in op then test name order.
// A non-empty op restricts discovery to that operator's directory, which
// must exist. Entries that are not directories are skipped.
func Discover(refDir, op string) ([]Case, error) {
	root := filepath.Join(refDir, "vtest")

	var ops []string
	if op != "" {
		info, err := os.Stat(filepath.Join(root, op))
		if err != nil {
			return nil, fmt.Errorf("discover: op %q: %w", op, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("discover: op %q is not a directory", op)
		}
		ops = []string{op}
	} else {
		var err error
		if ops, err = subdirs(root); err != nil {
			return nil, fmt.Errorf("discover: %w", err)
		}
	}

	var cases []Case
	for _, o := range ops {
		tests, err := subdirs(filepath.Join(root, o))
		if err != nil {
			return nil, fmt.Errorf("discover: %w", err)
		}
		for _, test := range tests {
			cases = append(cases, Case{
				Seq:  len(cases),
				Op:   o,
				Test: test,
				Dir:  filepath.Join(root, o, test),
			})
		}
	}

	seen := make(map[string]int, len(cases))
	for _, c := range cases {
		seen[c.Test]++
	}
	for i := range cases {
		cases[i].Duplicate = seen[cases[i].Test] > 1
	}
	return cases, nil
}

func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
