package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/tosa2mlir/internal/graph"
	"github.com/roach88/tosa2mlir/internal/ir"
)

// Options configures translation.
type Options struct {
	// Namespace prefixes generic operator names. Default "tosa".
	Namespace string
}

// Emitter renders blocks as MLIR functions. Each Emitter owns one register
// table; use a fresh Emitter per graph.
type Emitter struct {
	regs  *ir.RegisterTable
	types *TypeTable
	lower *Lowerer
}

// NewEmitter creates an emitter with fresh tables.
func NewEmitter(opts Options) *Emitter {
	regs := ir.NewRegisterTable()
	types := NewTypeTable()
	return &Emitter{
		regs:  regs,
		types: types,
		lower: NewLowerer(opts.Namespace, regs, types),
	}
}

// EmitFunction renders b as a function definition ending in a newline:
//
//	func @main(%arg0 : tensor<2xf32>) -> (tensor<2xf32>) {
//	  // placeholder() -> a
//	  %0 = "tosa.abs"(%arg0) : (tensor<2xf32>) -> (tensor<2xf32>)
//	  return %0 : tensor<2xf32>
//	}
//
// Operators are emitted in declaration order. Errors carry the block name
// and, where one is involved, the operator index.
func (e *Emitter) EmitFunction(b graph.Block) (string, error) {
	name := b.Name()
	if err := e.types.Refresh(b); err != nil {
		return "", err
	}

	header, err := e.header(b)
	if err != nil {
		return "", ir.Locate(err, name, -1)
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	for i, op := range b.Operators() {
		line, err := e.lower.LowerOperator(op)
		if err != nil {
			return "", ir.Locate(err, name, i)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	ret, err := e.terminator(b)
	if err != nil {
		return "", ir.Locate(err, name, -1)
	}
	sb.WriteString(ret)
	sb.WriteString("\n}\n")
	return sb.String(), nil
}

func (e *Emitter) header(b graph.Block) (string, error) {
	args := make([]string, b.InputsLength())
	for i, in := range b.Inputs() {
		typ, err := e.types.Lookup(in)
		if err != nil {
			return "", err
		}
		reg, err := e.regs.ReserveArgument(in)
		if err != nil {
			return "", err
		}
		args[i] = reg + " : " + typ
	}
	rets, err := e.types.LookupAll(b.Outputs())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func @%s(%s) -> (%s) {", b.Name(), strings.Join(args, ", "), strings.Join(rets, ", ")), nil
}

func (e *Emitter) terminator(b graph.Block) (string, error) {
	outputs := b.Outputs()
	if len(outputs) == 0 {
		return "  return", nil
	}
	regs, err := e.regs.LookupAll(outputs)
	if err != nil {
		return "", err
	}
	types, err := e.types.LookupAll(outputs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("  return %s : %s", strings.Join(regs, ", "), strings.Join(types, ", ")), nil
}

// Translate renders the entry block of g.
func Translate(g *graph.Graph, opts Options) (string, error) {
	return NewEmitter(opts).EmitFunction(g.Main())
}

// TranslateFile loads the graph at path and translates it.
func TranslateFile(path string, opts Options) (string, error) {
	g, err := graph.LoadFile(path)
	if err != nil {
		return "", err
	}
	return Translate(g, opts)
}
