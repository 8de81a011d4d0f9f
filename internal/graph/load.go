package graph

import (
	"fmt"
	"os"
	"unicode/utf8"

	flatbuffers "github.com/google/flatbuffers/go"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/tosa2mlir/internal/ir"
	"github.com/roach88/tosa2mlir/internal/tosafb"
)

// minBufferSize is the root offset plus the file identifier.
const minBufferSize = 8

// LoadFile reads and decodes the graph stored at path.
func LoadFile(path string) (*Graph, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	return Load(buf)
}

// Load decodes a serialized TOSA graph.
//
// The whole buffer is decoded up front. A buffer that does not decode per
// the schema, lacks a "main" block, declares two blocks with one name,
// declares a tensor twice within a block or has a negative dimension fails
// with ir.ErrMalformedGraph. Names are normalized to NFC.
func Load(buf []byte) (g *Graph, err error) {
	if len(buf) < minBufferSize {
		return nil, ir.NewMalformedGraph(fmt.Sprintf("buffer is %d bytes", len(buf)), nil)
	}
	if !tosafb.TosaGraphBufferHasIdentifier(buf) {
		return nil, ir.NewMalformedGraph(fmt.Sprintf("missing %q file identifier", tosafb.FileIdentifier), nil)
	}

	// The flatbuffers runtime panics on out-of-range offsets.
	defer func() {
		if r := recover(); r != nil {
			g = nil
			err = ir.NewMalformedGraph("buffer does not decode", fmt.Errorf("%v", r))
		}
	}()

	d := &decoder{
		size: len(buf),
		g:    &Graph{byName: make(map[string]int)},
	}
	if err := d.graph(tosafb.GetRootAsTosaGraph(buf, 0)); err != nil {
		return nil, err
	}
	if _, ok := d.g.byName[MainBlock]; !ok {
		return nil, ir.NewMalformedGraph(fmt.Sprintf("no %q block", MainBlock), nil)
	}
	return d.g, nil
}

type decoder struct {
	size int
	g    *Graph
}

// count rejects vector lengths that cannot fit in the buffer before any
// allocation is sized by them.
func (d *decoder) count(n int, what string) (int, error) {
	if n < 0 || n > d.size/4 {
		return 0, ir.NewMalformedGraph(fmt.Sprintf("%s vector length %d exceeds buffer", what, n), nil)
	}
	return n, nil
}

func (d *decoder) name(b []byte, what string) (string, error) {
	if !utf8.Valid(b) {
		return "", ir.NewMalformedGraph(what+" is not valid UTF-8", nil)
	}
	return norm.NFC.String(string(b)), nil
}

func (d *decoder) names(n int, at func(int) []byte, what string) ([]string, error) {
	n, err := d.count(n, what)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = d.name(at(i), what); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *decoder) graph(root *tosafb.TosaGraph) error {
	if v := root.Version(nil); v != nil {
		d.g.version = Version{
			Major:        v.Major(),
			Minor:        v.Minor(),
			Patch:        v.Patch(),
			Experimental: v.Experimental(),
		}
	}

	n, err := d.count(root.BlocksLength(), "blocks")
	if err != nil {
		return err
	}
	d.g.blocks = make([]blockRecord, 0, n)
	var fb tosafb.TosaBasicBlock
	for i := 0; i < n; i++ {
		root.Blocks(&fb, i)
		rec, err := d.block(&fb)
		if err != nil {
			return err
		}
		if _, dup := d.g.byName[rec.name]; dup {
			return ir.NewMalformedGraph(fmt.Sprintf("block %q declared twice", rec.name), nil)
		}
		d.g.byName[rec.name] = len(d.g.blocks)
		d.g.blocks = append(d.g.blocks, rec)
	}
	return nil
}

func (d *decoder) block(fb *tosafb.TosaBasicBlock) (blockRecord, error) {
	var rec blockRecord
	var err error
	if rec.name, err = d.name(fb.Name(), "block name"); err != nil {
		return rec, err
	}
	fail := func(err error) (blockRecord, error) {
		return rec, ir.Locate(err, rec.name, -1)
	}

	if rec.inputs, err = d.names(fb.InputsLength(), fb.Inputs, "block inputs"); err != nil {
		return fail(err)
	}
	if rec.outputs, err = d.names(fb.OutputsLength(), fb.Outputs, "block outputs"); err != nil {
		return fail(err)
	}

	nt, err := d.count(fb.TensorsLength(), "tensors")
	if err != nil {
		return fail(err)
	}
	rec.tensors.lo = len(d.g.tensors)
	declared := make(map[string]bool, nt)
	var ft tosafb.TosaTensor
	for i := 0; i < nt; i++ {
		fb.Tensors(&ft, i)
		t, err := d.tensor(&ft)
		if err != nil {
			return fail(err)
		}
		if declared[t.Name] {
			return fail(ir.NewMalformedGraph("tensor declared twice", nil).ForTensor(t.Name))
		}
		declared[t.Name] = true
		d.g.tensors = append(d.g.tensors, t)
	}
	rec.tensors.hi = len(d.g.tensors)

	no, err := d.count(fb.OperatorsLength(), "operators")
	if err != nil {
		return fail(err)
	}
	rec.operators.lo = len(d.g.operators)
	var fo tosafb.TosaOperator
	for i := 0; i < no; i++ {
		fb.Operators(&fo, i)
		op, err := d.operator(&fo)
		if err != nil {
			return rec, ir.Locate(err, rec.name, i)
		}
		d.g.operators = append(d.g.operators, op)
	}
	rec.operators.hi = len(d.g.operators)
	return rec, nil
}

func (d *decoder) tensor(ft *tosafb.TosaTensor) (Tensor, error) {
	var t Tensor
	var err error
	if t.Name, err = d.name(ft.Name(), "tensor name"); err != nil {
		return t, err
	}
	rank, err := d.count(ft.ShapeLength(), "shape")
	if err != nil {
		return t, err
	}
	if rank > 0 {
		t.Shape = make(ir.Shape, rank)
	}
	for i := 0; i < rank; i++ {
		dim := ft.Shape(i)
		if dim < 0 {
			return t, ir.NewMalformedGraph(fmt.Sprintf("dimension %d is %d", i, dim), nil).ForTensor(t.Name)
		}
		t.Shape[i] = int(dim)
	}
	// The kind is carried as-is; unsupported kinds surface when a type is
	// rendered, so graphs with unused exotic tensors still decode.
	t.Kind = ir.ElementKind(ft.Type())
	return t, nil
}

func (d *decoder) operator(fo *tosafb.TosaOperator) (Operator, error) {
	op := Operator{kind: ir.OpKind(fo.Op())}
	var err error
	if op.inputs, err = d.names(fo.InputsLength(), fo.Inputs, "operator inputs"); err != nil {
		return op, err
	}
	if op.outputs, err = d.names(fo.OutputsLength(), fo.Outputs, "operator outputs"); err != nil {
		return op, err
	}
	var tab flatbuffers.Table
	op.attribute = Payload{Type: uint8(fo.AttributeType()), Present: fo.Attribute(&tab)}
	op.quantInfo = Payload{Type: uint8(fo.QuantInfoType()), Present: fo.QuantInfo(&tab)}
	return op, nil
}
