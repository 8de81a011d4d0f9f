// Package config loads tosa2mlir settings from YAML or CUE files.
//
// Both formats are checked against the #Config definition in schema.cue,
// so a typo or an out-of-range value fails the same way regardless of the
// file format. Command-line flags override file values; see Merge.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Config holds settings shared by the translate, gentest and batch commands.
// Zero values mean "not set".
type Config struct {
	Mode             string   `yaml:"mode,omitempty" json:"mode,omitempty"`
	Namespace        string   `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Workers          int      `yaml:"workers,omitempty" json:"workers,omitempty"`
	Limit            int      `yaml:"limit,omitempty" json:"limit,omitempty"`
	Ledger           string   `yaml:"ledger,omitempty" json:"ledger,omitempty"`
	Op               string   `yaml:"op,omitempty" json:"op,omitempty"`
	DriverAttributes []string `yaml:"driver_attributes,omitempty" json:"driver_attributes,omitempty"`
}

// Load reads a config file. The format follows the extension: .cue for
// CUE, .yaml or .yml for YAML. A relative ledger path is resolved against
// the directory of the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		cfg, err = ParseCUE(data, path)
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q: use .cue, .yaml or .yml", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Ledger != "" && !filepath.IsAbs(cfg.Ledger) {
		cfg.Ledger = filepath.Join(filepath.Dir(path), cfg.Ledger)
	}
	return cfg, nil
}

// ParseYAML decodes a YAML document and validates it against the schema.
// Unknown fields are rejected. An empty document is an empty Config.
func ParseYAML(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the schema. Commands use it for settings
// assembled from flags.
func Validate(cfg Config) error {
	ctx := cuecontext.New()
	schema, err := schemaValue(ctx)
	if err != nil {
		return err
	}
	return validate(schema.Unify(ctx.Encode(cfg)))
}

// ParseCUE compiles a CUE document, unifies it with the schema and decodes
// the result. filename is used in error positions.
func ParseCUE(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()
	schema, err := schemaValue(ctx)
	if err != nil {
		return Config{}, err
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Config{}, fmt.Errorf("failed to parse CUE: %w", err)
	}

	unified := schema.Unify(v)
	if err := validate(unified); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func schemaValue(ctx *cue.Context) (cue.Value, error) {
	v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile config schema: %w", err)
	}
	return v.LookupPath(cue.ParsePath("#Config")), nil
}

func validate(v cue.Value) error {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Merge returns base with every set field of override applied on top.
// Zero strings and numbers count as unset, so an explicit zero in override
// is lost; callers holding an explicit zero assign the field directly.
func Merge(base, override Config) Config {
	out := base
	if override.Mode != "" {
		out.Mode = override.Mode
	}
	if override.Namespace != "" {
		out.Namespace = override.Namespace
	}
	if override.Workers != 0 {
		out.Workers = override.Workers
	}
	if override.Limit != 0 {
		out.Limit = override.Limit
	}
	if override.Ledger != "" {
		out.Ledger = override.Ledger
	}
	if override.Op != "" {
		out.Op = override.Op
	}
	if override.DriverAttributes != nil {
		out.DriverAttributes = slices.Clone(override.DriverAttributes)
	}
	return out
}
