package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "tosa2mlir.yaml", `
mode: iree
namespace: tosa
workers: 4
limit: 100
ledger: runs.db
op: add
driver_attributes:
  - iree.module.export
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Mode:             "iree",
		Namespace:        "tosa",
		Workers:          4,
		Limit:            100,
		Ledger:           filepath.Join(filepath.Dir(path), "runs.db"),
		Op:               "add",
		DriverAttributes: []string{"iree.module.export"},
	}, cfg)
}

func TestLoad_CUE(t *testing.T) {
	path := writeFile(t, "tosa2mlir.cue", `
mode:    "low-level"
workers: 2
ledger:  "/var/lib/tosa2mlir/runs.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "low-level", cfg.Mode)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "/var/lib/tosa2mlir/runs.db", cfg.Ledger)
	assert.Empty(t, cfg.Namespace)
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown yaml field", "c.yaml", "mdoe: iree\n"},
		{"bad yaml mode", "c.yaml", "mode: vulkan\n"},
		{"negative workers", "c.yaml", "workers: -1\n"},
		{"bad namespace", "c.yaml", "namespace: \"9x\"\n"},
		{"empty attribute", "c.yaml", "driver_attributes: [\"\"]\n"},
		{"malformed yaml", "c.yaml", "mode: [\n"},
		{"unknown cue field", "c.cue", "threads: 3\n"},
		{"bad cue mode", "c.cue", "mode: \"vulkan\"\n"},
		{"malformed cue", "c.cue", "mode: \n"},
		{"unsupported extension", "c.toml", "mode = \"iree\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := Config{Mode: "iree", Namespace: "tosa", Workers: 4, DriverAttributes: []string{"a"}}
	override := Config{Mode: "low-level", Limit: 10}

	got := Merge(base, override)
	assert.Equal(t, Config{
		Mode:             "low-level",
		Namespace:        "tosa",
		Workers:          4,
		Limit:            10,
		DriverAttributes: []string{"a"},
	}, got)

	// An explicitly empty attribute list clears the base list.
	got = Merge(base, Config{DriverAttributes: []string{}})
	assert.Empty(t, got.DriverAttributes)
	assert.NotNil(t, got.DriverAttributes)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Config{}))
	assert.NoError(t, Validate(Config{Mode: "cpu-runner", Namespace: "tfl", Workers: 8}))
	assert.Error(t, Validate(Config{Mode: "gpu"}))
	assert.Error(t, Validate(Config{Limit: -5}))
	assert.Error(t, Validate(Config{Namespace: "has space"}))
}
