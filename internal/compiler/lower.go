package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/tosa2mlir/internal/graph"
	"github.com/roach88/tosa2mlir/internal/ir"
)

// DefaultNamespace is the dialect prefix of generic operator names.
const DefaultNamespace = "tosa"

// Lowerer renders operators of one block as generic MLIR operations.
type Lowerer struct {
	namespace string
	regs      *ir.RegisterTable
	types     *TypeTable
}

// NewLowerer creates a lowerer over the given tables. An empty namespace
// means DefaultNamespace.
func NewLowerer(namespace string, regs *ir.RegisterTable, types *TypeTable) *Lowerer {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Lowerer{namespace: namespace, regs: regs, types: types}
}

// LowerOperator renders op as one line without a trailing newline.
//
// A placeholder with no inputs and one output renders as a comment and
// allocates nothing. Any other operator renders as
//
//	  %0 = "tosa.add"(%arg0, %arg1) : (T, T) -> (T)
//
// and binds its outputs to the next value register.
func (l *Lowerer) LowerOperator(op graph.Operator) (string, error) {
	name, err := op.Kind().Name()
	if err != nil {
		return "", err
	}

	if op.IsPlaceholder() {
		return "  // placeholder() -> " + op.Output(0), nil
	}

	if !op.Attribute().Empty() {
		return "", ir.NewUnsupportedFeature(fmt.Sprintf("%s carries attribute type %d", name, op.Attribute().Type))
	}
	if !op.QuantInfo().Empty() {
		return "", ir.NewUnsupportedFeature(fmt.Sprintf("%s carries quantization info type %d", name, op.QuantInfo().Type))
	}

	inputs := op.Inputs()
	outputs := op.Outputs()

	args, err := l.regs.LookupAll(inputs)
	if err != nil {
		return "", err
	}
	argTypes, err := l.types.LookupAll(inputs)
	if err != nil {
		return "", err
	}
	retTypes, err := l.types.LookupAll(outputs)
	if err != nil {
		return "", err
	}
	def, err := l.regs.AllocateValue(outputs)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("  %s = \"%s.%s\"(%s) : (%s) -> (%s)",
		def, l.namespace, name,
		strings.Join(args, ", "),
		strings.Join(argTypes, ", "),
		strings.Join(retTypes, ", "),
	), nil
}
