package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tosa2mlir/internal/testutil"
)

func TestGenTest_LowLevel(t *testing.T) {
	stdout, _, err := execute(t, "gentest", addCaseDir(t), "--mode", "cpu-runner")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "// RUN: mlir-opt"))
	assert.Contains(t, stdout, "  %0 = constant dense<[[1.0, 2.0, 3.0], [4.0, 5.0, 6.0]]> : tensor<2x3xf32>\n")
	assert.Contains(t, stdout, "  %2 = call @main(%0, %1) : (tensor<2x3xf32>, tensor<2x3xf32>) -> (tensor<2x3xf32>)\n")
	assert.Contains(t, stdout, "call @print_memref_f32(")
}

func TestGenTest_SymbolicAssertionToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "add.mlir")
	stdout, _, err := execute(t, "gentest", addCaseDir(t), "-m", "iree", "--attr", "iree.module.export", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Generated symbolic-assertion test")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "func @main("))
	assert.Contains(t, text, "func @test_main() attributes { iree.module.export } {")
	assert.Contains(t, text, "check.expect_almost_eq_const(%2, dense<[[1.5, 2.5, 3.5], [4.5, 5.5, 6.5]]> : tensor<2x3xf32>) : tensor<2x3xf32>")
}

func TestGenTest_PretranslatedIR(t *testing.T) {
	dir := addCaseDir(t)
	ir := filepath.Join(t.TempDir(), "given.mlir")
	require.NoError(t, os.WriteFile(ir, []byte("// given IR\n"), 0o644))

	stdout, _, err := execute(t, "gentest", dir, "--mode", "symbolic-assertion", "--ir", ir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "// given IR\n\nfunc @test_main() {\n"))
}

func TestGenTest_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "gentest", addCaseDir(t), "--mode", "low-level")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   GenTestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "low-level", resp.Data.Mode)
	assert.Equal(t, 2, resp.Data.Inputs)
	assert.Equal(t, 1, resp.Data.Results)
	assert.Contains(t, resp.Data.Test, "func @test_main()")
}

func TestGenTest_ModeRequired(t *testing.T) {
	_, _, err := execute(t, "gentest", addCaseDir(t))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--mode is required")

	_, _, err = execute(t, "gentest", addCaseDir(t), "--mode", "vulkan")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGenTest_ModeFromConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "tosa2mlir.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("mode: iree\ndriver_attributes: [iree.module.export]\n"), 0o644))

	stdout, _, err := execute(t, "--config", cfg, "gentest", addCaseDir(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "attributes { iree.module.export }")
	assert.Contains(t, stdout, "check.expect_almost_eq_const(")
}

func TestGenTest_UnsupportedDtype(t *testing.T) {
	c := testutil.AddCase()
	c.Arrays["input-0.npy"] = testutil.NPY{Descr: "<f8", Shape: []int{2, 3}, Data: []float64{1, 2, 3, 4, 5, 6}}
	dir := testutil.WriteCase(t, filepath.Join(t.TempDir(), "f64"), c)
	out := filepath.Join(t.TempDir(), "never.mlir")

	stdout, _, err := execute(t, "gentest", dir, "--mode", "low-level", "-o", out)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E203]")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenTest_NotADirectory(t *testing.T) {
	_, _, err := execute(t, "gentest", filepath.Join(t.TempDir(), "missing"), "--mode", "low-level")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
