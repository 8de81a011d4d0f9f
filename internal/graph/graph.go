// Package graph provides the decoded, read-only form of a TOSA graph.
//
// A Graph is materialized in one eager pass over the flatbuffer (see Load)
// and never refers back to the buffer. Tensors and operators of every block
// live in per-graph arenas; a Block is a small view holding an index.
package graph

import (
	"errors"
	"slices"

	"github.com/roach88/tosa2mlir/internal/ir"
)

// MainBlock is the name of the entry block every graph must declare.
const MainBlock = "main"

// Version is the schema version recorded in the buffer.
type Version struct {
	Major        int32
	Minor        int32
	Patch        int32
	Experimental bool
}

// Tensor is a tensor declaration.
type Tensor struct {
	Name  string
	Kind  ir.ElementKind
	Shape ir.Shape
}

// Type returns the MLIR tensor type of the declaration.
func (t Tensor) Type() (string, error) {
	typ, err := ir.TensorType(t.Kind, t.Shape)
	var te *ir.TranslateError
	if errors.As(err, &te) {
		return "", te.ForTensor(t.Name)
	}
	return typ, err
}

// Payload records the presence of an optional union payload.
type Payload struct {
	// Type is the union tag; zero when absent.
	Type uint8
	// Present reports whether the union table offset is set.
	Present bool
}

// Empty reports whether the payload is absent.
func (p Payload) Empty() bool {
	return p.Type == 0 && !p.Present
}

// Operator is one operator of a block.
type Operator struct {
	kind      ir.OpKind
	inputs    []string
	outputs   []string
	attribute Payload
	quantInfo Payload
}

// NewOperator creates an operator. Slices are copied.
func NewOperator(kind ir.OpKind, inputs, outputs []string, attribute, quantInfo Payload) Operator {
	return Operator{
		kind:      kind,
		inputs:    slices.Clone(inputs),
		outputs:   slices.Clone(outputs),
		attribute: attribute,
		quantInfo: quantInfo,
	}
}

func (o Operator) Kind() ir.OpKind { return o.kind }
func (o Operator) Inputs() []string { return slices.Clone(o.inputs) }
func (o Operator) Outputs() []string { return slices.Clone(o.outputs) }
func (o Operator) InputsLength() int { return len(o.inputs) }
func (o Operator) OutputsLength() int { return len(o.outputs) }
func (o Operator) Input(i int) string { return o.inputs[i] }
func (o Operator) Output(i int) string { return o.outputs[i] }
func (o Operator) Attribute() Payload { return o.attribute }
func (o Operator) QuantInfo() Payload { return o.quantInfo }

// IsPlaceholder reports whether the operator is the input marker: a
// placeholder with no inputs and exactly one output.
func (o Operator) IsPlaceholder() bool {
	return o.kind == ir.OpPlaceholder && len(o.inputs) == 0 && len(o.outputs) == 1
}

// span is a half-open range into an arena.
type span struct {
	lo, hi int
}

type blockRecord struct {
	name      string
	inputs    []string
	outputs   []string
	tensors   span
	operators span
}

// Graph is a decoded TOSA graph. It is immutable and safe for concurrent reads.
type Graph struct {
	version   Version
	blocks    []blockRecord
	tensors   []Tensor
	operators []Operator
	byName    map[string]int
}

// Version returns the schema version recorded in the buffer.
func (g *Graph) Version() Version {
	return g.version
}

// BlocksLength returns the number of blocks.
func (g *Graph) BlocksLength() int {
	return len(g.blocks)
}

// Block returns the i-th block in declaration order.
func (g *Graph) Block(i int) Block {
	_ = g.blocks[i]
	return Block{g: g, idx: i}
}

// Blocks returns every block in declaration order.
func (g *Graph) Blocks() []Block {
	out := make([]Block, len(g.blocks))
	for i := range g.blocks {
		out[i] = Block{g: g, idx: i}
	}
	return out
}

// BlocksByName returns the blocks keyed by name.
func (g *Graph) BlocksByName() map[string]Block {
	out := make(map[string]Block, len(g.byName))
	for name, i := range g.byName {
		out[name] = Block{g: g, idx: i}
	}
	return out
}

// Lookup returns the block with the given name.
func (g *Graph) Lookup(name string) (Block, bool) {
	i, ok := g.byName[name]
	if !ok {
		return Block{}, false
	}
	return Block{g: g, idx: i}, true
}

// Main returns the entry block. Load guarantees it exists.
func (g *Graph) Main() Block {
	b, _ := g.Lookup(MainBlock)
	return b
}

// Block is a read-only view of one block of a Graph.
type Block struct {
	g   *Graph
	idx int
}

func (b Block) rec() *blockRecord { return &b.g.blocks[b.idx] }

// Name returns the block name.
func (b Block) Name() string { return b.rec().name }

// Inputs returns the ordered input tensor names.
func (b Block) Inputs() []string { return slices.Clone(b.rec().inputs) }

// InputsLength returns the number of inputs.
func (b Block) InputsLength() int { return len(b.rec().inputs) }

// Input returns the i-th input name.
func (b Block) Input(i int) string { return b.rec().inputs[i] }

// Outputs returns the ordered output tensor names.
func (b Block) Outputs() []string { return slices.Clone(b.rec().outputs) }

// OutputsLength returns the number of outputs.
func (b Block) OutputsLength() int { return len(b.rec().outputs) }

// Output returns the i-th output name.
func (b Block) Output(i int) string { return b.rec().outputs[i] }

// Tensors returns the tensor declarations in order.
func (b Block) Tensors() []Tensor {
	s := b.rec().tensors
	out := make([]Tensor, 0, s.hi-s.lo)
	for _, t := range b.g.tensors[s.lo:s.hi] {
		t.Shape = slices.Clone(t.Shape)
		out = append(out, t)
	}
	return out
}

// TensorsLength returns the number of tensor declarations.
func (b Block) TensorsLength() int {
	s := b.rec().tensors
	return s.hi - s.lo
}

// Tensor returns the i-th tensor declaration.
func (b Block) Tensor(i int) Tensor {
	s := b.rec().tensors
	if i < 0 || s.lo+i >= s.hi {
		panic("graph: tensor index out of range")
	}
	t := b.g.tensors[s.lo+i]
	t.Shape = slices.Clone(t.Shape)
	return t
}

// Operators returns the operators in declaration order.
func (b Block) Operators() []Operator {
	s := b.rec().operators
	return slices.Clone(b.g.operators[s.lo:s.hi])
}

// OperatorsLength returns the number of operators.
func (b Block) OperatorsLength() int {
	s := b.rec().operators
	return s.hi - s.lo
}

// Operator returns the i-th operator.
func (b Block) Operator(i int) Operator {
	s := b.rec().operators
	if i < 0 || s.lo+i >= s.hi {
		panic("graph: operator index out of range")
	}
	return b.g.operators[s.lo+i]
}
