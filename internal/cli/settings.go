package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/tosa2mlir/internal/compiler"
	"github.com/roach88/tosa2mlir/internal/config"
	"github.com/roach88/tosa2mlir/internal/harness"
	"github.com/roach88/tosa2mlir/internal/suite"
)

// DefaultLedger is the ledger path used when neither a flag nor the config
// file names one.
const DefaultLedger = "tosa2mlir.db"

// settingsFlags binds the config-backed flags a command accepts into v.
type settingsFlags struct {
	v config.Config
}

func (s *settingsFlags) mode(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.v.Mode, "mode", "m", "", "test mode (low-level|symbolic-assertion)")
}

func (s *settingsFlags) namespace(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.v.Namespace, "namespace", "", "dialect namespace for operator names (default \"tosa\")")
}

func (s *settingsFlags) attributes(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&s.v.DriverAttributes, "attr", nil, "driver function attribute (repeatable)")
}

func (s *settingsFlags) ledger(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.v.Ledger, "ledger", "", "path to the run ledger (default \""+DefaultLedger+"\")")
}

// resolve layers defaults, the config file and the flags the user set, in
// that order, and validates the result.
func (s *settingsFlags) resolve(cmd *cobra.Command, opts *RootOptions) (config.Config, error) {
	if err := opts.prepare(); err != nil {
		return config.Config{}, err
	}

	// Changed flags are assigned, not merged, so an explicit zero such as
	// --limit 0 overrides the file.
	cfg := config.Merge(config.Config{Namespace: compiler.DefaultNamespace, Ledger: DefaultLedger}, opts.file)
	changed := cmd.Flags().Changed
	if changed("mode") {
		cfg.Mode = s.v.Mode
	}
	if changed("namespace") {
		cfg.Namespace = s.v.Namespace
	}
	if changed("workers") {
		cfg.Workers = s.v.Workers
	}
	if changed("limit") {
		cfg.Limit = s.v.Limit
	}
	if changed("ledger") {
		cfg.Ledger = s.v.Ledger
	}
	if changed("op") {
		cfg.Op = s.v.Op
	}
	if changed("attr") {
		cfg.DriverAttributes = s.v.DriverAttributes
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, ErrCodeInvalidArgs+": invalid settings", err)
	}
	return cfg, nil
}

// requireMode parses the resolved mode, which must be set.
func requireMode(cfg config.Config) (harness.Mode, error) {
	if cfg.Mode == "" {
		return 0, NewExitError(ExitCommandError, ErrCodeInvalidArgs+": --mode is required (low-level|symbolic-assertion)")
	}
	m, err := harness.ParseMode(cfg.Mode)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, ErrCodeInvalidArgs+": invalid mode", err)
	}
	return m, nil
}

// graphPath accepts either a graph file or a test directory holding one.
func graphPath(arg string) (path, dir string, err error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", "", err
	}
	if info.IsDir() {
		return filepath.Join(arg, suite.GraphFile), arg, nil
	}
	return arg, filepath.Dir(arg), nil
}
