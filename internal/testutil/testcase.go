package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Case is a reference test directory: a graph plus its arrays, keyed by
// file name (e.g. "input-0.npy", "result-0.npy").
type Case struct {
	Graph  GraphSpec
	Arrays map[string]NPY
}

// WriteCase writes c into dir as test.tosa plus one file per array and
// returns dir.
func WriteCase(t *testing.T, dir string, c Case) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.tosa"), c.Graph.Encode(), 0o644))
	for name, a := range c.Arrays {
		WriteNPY(t, dir, name, a)
	}
	return dir
}

// WriteReference lays cases out as <root>/vtest/<op>/<test> and returns root.
func WriteReference(t *testing.T, root string, cases map[string]map[string]Case) string {
	t.Helper()
	for op, tests := range cases {
		for test, c := range tests {
			WriteCase(t, filepath.Join(root, "vtest", op, test), c)
		}
	}
	return root
}

// AddCase is AddGraph with two 2x3 float inputs and their sum.
func AddCase() Case {
	return Case{
		Graph: AddGraph(),
		Arrays: map[string]NPY{
			"input-0.npy":  Float32NPY([]int{2, 3}, 1, 2, 3, 4, 5, 6),
			"input-1.npy":  Float32NPY([]int{2, 3}, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5),
			"result-0.npy": Float32NPY([]int{2, 3}, 1.5, 2.5, 3.5, 4.5, 5.5, 6.5),
		},
	}
}
