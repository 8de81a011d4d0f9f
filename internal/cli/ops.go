package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tosa2mlir/internal/compiler"
	"github.com/roach88/tosa2mlir/internal/ir"
)

// OpEntry is one row of the operator table.
type OpEntry struct {
	Kind uint32 `json:"kind"`
	Name string `json:"name"`
	MLIR string `json:"mlir"`
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the operator table",
		Long: `List every operator kind the translator recognizes with the MLIR
operation name it lowers to.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.prepare(); err != nil {
				return err
			}
			ns := namespace
			if ns == "" {
				ns = rootOpts.file.Namespace
			}
			if ns == "" {
				ns = compiler.DefaultNamespace
			}
			return runOps(rootOpts.formatter(cmd), ns)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "dialect namespace (default \"tosa\")")

	return cmd
}

func runOps(formatter *OutputFormatter, namespace string) error {
	var entries []OpEntry
	for _, k := range ir.OpKinds() {
		name, err := k.Name()
		if err != nil {
			return err
		}
		entries = append(entries, OpEntry{Kind: uint32(k), Name: name, MLIR: namespace + "." + name})
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%3d  %s\n", e.Kind, e.MLIR)
	}
	return nil
}
