// Command tosa2mlir translates TOSA flatbuffer graphs to MLIR and generates
// MLIR tests from reference model outputs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tosa2mlir/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tosa2mlir: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
