// Package testutil provides fixtures shared by package tests: TOSA graph
// buffers built with the flatbuffers builder, .npy files, reference test
// directories and golden file assertions.
package testutil

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/roach88/tosa2mlir/internal/ir"
	"github.com/roach88/tosa2mlir/internal/tosafb"
)

// TensorSpec describes a tensor declaration.
type TensorSpec struct {
	Name  string
	Kind  ir.ElementKind
	Shape []int32
}

// OperatorSpec describes an operator.
type OperatorSpec struct {
	Op      ir.OpKind
	Inputs  []string
	Outputs []string

	// AttributeType and QuantInfoType set the union tags. Attribute and
	// QuantInfo attach an empty union table.
	AttributeType byte
	Attribute     bool
	QuantInfoType byte
	QuantInfo     bool
}

// BlockSpec describes a basic block.
type BlockSpec struct {
	Name      string
	Inputs    []string
	Outputs   []string
	Tensors   []TensorSpec
	Operators []OperatorSpec
}

// GraphSpec describes a graph.
type GraphSpec struct {
	Blocks []BlockSpec
}

// Tensor is shorthand for a TensorSpec.
func Tensor(name string, kind ir.ElementKind, dims ...int32) TensorSpec {
	return TensorSpec{Name: name, Kind: kind, Shape: dims}
}

// Placeholder is a zero-input placeholder producing name.
func Placeholder(name string) OperatorSpec {
	return OperatorSpec{Op: ir.OpPlaceholder, Outputs: []string{name}}
}

// Op is shorthand for an OperatorSpec without payloads.
func Op(kind ir.OpKind, inputs []string, outputs ...string) OperatorSpec {
	return OperatorSpec{Op: kind, Inputs: inputs, Outputs: outputs}
}

// Main wraps a single block named "main".
func Main(b BlockSpec) GraphSpec {
	b.Name = "main"
	return GraphSpec{Blocks: []BlockSpec{b}}
}

// AddGraph is main(a, b) -> c with c = add(a, b), all tensor<2x3xf32>.
func AddGraph() GraphSpec {
	return Main(BlockSpec{
		Inputs:  []string{"a", "b"},
		Outputs: []string{"c"},
		Tensors: []TensorSpec{
			Tensor("a", ir.ElementFloat32, 2, 3),
			Tensor("b", ir.ElementFloat32, 2, 3),
			Tensor("c", ir.ElementFloat32, 2, 3),
		},
		Operators: []OperatorSpec{
			Placeholder("a"),
			Placeholder("b"),
			Op(ir.OpAdd, []string{"a", "b"}, "c"),
		},
	})
}

// Encode serializes the graph as a TOSA flatbuffer with version 0.22.0.
func (g GraphSpec) Encode() []byte {
	b := flatbuffers.NewBuilder(1024)

	blocks := make([]flatbuffers.UOffsetT, len(g.Blocks))
	for i, blk := range g.Blocks {
		blocks[i] = encodeBlock(b, blk)
	}
	blocksVec := tosafb.CreateOffsetVector(b, blocks)

	tosafb.VersionStart(b)
	tosafb.VersionAddMajor(b, 0)
	tosafb.VersionAddMinor(b, 22)
	tosafb.VersionAddPatch(b, 0)
	version := tosafb.VersionEnd(b)

	tosafb.TosaGraphStart(b)
	tosafb.TosaGraphAddVersion(b, version)
	tosafb.TosaGraphAddBlocks(b, blocksVec)
	tosafb.FinishTosaGraphBuffer(b, tosafb.TosaGraphEnd(b))
	return b.FinishedBytes()
}

func encodeBlock(b *flatbuffers.Builder, blk BlockSpec) flatbuffers.UOffsetT {
	ops := make([]flatbuffers.UOffsetT, len(blk.Operators))
	for i, op := range blk.Operators {
		ops[i] = encodeOperator(b, op)
	}
	opsVec := tosafb.CreateOffsetVector(b, ops)

	tensors := make([]flatbuffers.UOffsetT, len(blk.Tensors))
	for i, t := range blk.Tensors {
		tensors[i] = encodeTensor(b, t)
	}
	tensorsVec := tosafb.CreateOffsetVector(b, tensors)

	inputs := tosafb.CreateStringVector(b, blk.Inputs)
	outputs := tosafb.CreateStringVector(b, blk.Outputs)
	name := b.CreateString(blk.Name)

	tosafb.TosaBasicBlockStart(b)
	tosafb.TosaBasicBlockAddName(b, name)
	tosafb.TosaBasicBlockAddOperators(b, opsVec)
	tosafb.TosaBasicBlockAddTensors(b, tensorsVec)
	tosafb.TosaBasicBlockAddInputs(b, inputs)
	tosafb.TosaBasicBlockAddOutputs(b, outputs)
	return tosafb.TosaBasicBlockEnd(b)
}

func encodeOperator(b *flatbuffers.Builder, op OperatorSpec) flatbuffers.UOffsetT {
	inputs := tosafb.CreateStringVector(b, op.Inputs)
	outputs := tosafb.CreateStringVector(b, op.Outputs)
	var attr, quant flatbuffers.UOffsetT
	if op.Attribute {
		attr = tosafb.CreateEmptyTable(b)
	}
	if op.QuantInfo {
		quant = tosafb.CreateEmptyTable(b)
	}

	tosafb.TosaOperatorStart(b)
	tosafb.TosaOperatorAddOp(b, uint32(op.Op))
	tosafb.TosaOperatorAddAttributeType(b, tosafb.AttributeType(op.AttributeType))
	if op.Attribute {
		tosafb.TosaOperatorAddAttribute(b, attr)
	}
	tosafb.TosaOperatorAddInputs(b, inputs)
	tosafb.TosaOperatorAddOutputs(b, outputs)
	tosafb.TosaOperatorAddQuantInfoType(b, tosafb.QuantInfoType(op.QuantInfoType))
	if op.QuantInfo {
		tosafb.TosaOperatorAddQuantInfo(b, quant)
	}
	return tosafb.TosaOperatorEnd(b)
}

func encodeTensor(b *flatbuffers.Builder, t TensorSpec) flatbuffers.UOffsetT {
	name := b.CreateString(t.Name)
	shape := tosafb.CreateInt32Vector(b, t.Shape)

	tosafb.TosaTensorStart(b)
	tosafb.TosaTensorAddName(b, name)
	tosafb.TosaTensorAddShape(b, shape)
	tosafb.TosaTensorAddType(b, uint32(t.Kind))
	return tosafb.TosaTensorEnd(b)
}
