// Package ir provides the foundational types of the TOSA to MLIR translator.
//
// This package contains the closed element-kind and operator-kind
// enumerations, the tensor type mapper, the SSA register table and the
// translation error kinds. All other internal packages import ir; ir imports
// nothing internal.
//
// Key constraints:
//   - Enumeration tables are total over their variants plus one explicit
//     failure arm (ErrUnsupportedType, ErrUnknownOperatorKind)
//   - A register, once bound to a tensor name, is never rebound
//   - Register tables are owned per translation and never shared
package ir
