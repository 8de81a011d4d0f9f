// Package harness synthesizes executable MLIR tests around translated IR.
//
// A test file is the mode preamble, the IR verbatim and a driver function
// that materializes each input array as a constant, calls the entry
// function and checks each result.
//
// # Modes
//
//   - low-level (alias cpu-runner): RUN lines for mlir-opt, mlir-cpu-runner
//     and FileCheck, external print_memref declarations, and per result a
//     flatten, an unranked cast and a print call.
//   - symbolic-assertion (alias iree): no preamble; per result one
//     check.expect_almost_eq_const (float kinds) or check.expect_eq_const.
//
// # Usage
//
//	gen := harness.Generator{Mode: harness.ModeLowLevel}
//	text, err := gen.Generate(irText, inputs, results)
//
// Registers in the driver come from a fresh ir.RegisterTable, so the
// constants are %0, %1, ... and a call with two results defines %k:2.
package harness
