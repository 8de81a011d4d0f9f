// Package compiler lowers a decoded TOSA graph to textual MLIR.
//
// Translation is a single synchronous pass over the entry block:
//
//	g, _ := graph.Load(buf)
//	text, err := compiler.Translate(g, compiler.Options{})
//
// Every call owns a fresh register table and type table, so independent
// graphs may be translated concurrently.
package compiler

import (
	"errors"

	"github.com/roach88/tosa2mlir/internal/graph"
	"github.com/roach88/tosa2mlir/internal/ir"
)

// TypeTable maps tensor names to their MLIR type strings.
type TypeTable struct {
	types map[string]string
}

// NewTypeTable creates an empty type table.
func NewTypeTable() *TypeTable {
	return &TypeTable{types: make(map[string]string)}
}

// Refresh replaces the table contents with the declarations of b.
// A declaration with an unsupported element kind fails with
// ir.ErrUnsupportedType and leaves the table empty.
func (t *TypeTable) Refresh(b graph.Block) error {
	clear(t.types)
	for _, tensor := range b.Tensors() {
		typ, err := tensor.Type()
		if err != nil {
			clear(t.types)
			return ir.Locate(err, b.Name(), -1)
		}
		t.types[tensor.Name] = typ
	}
	return nil
}

// Lookup returns the type of name, or ir.ErrUnboundValue if no declaration
// names it.
func (t *TypeTable) Lookup(name string) (string, error) {
	typ, ok := t.types[name]
	if !ok {
		err := ir.NewUnboundValue(name)
		err.Message = "no tensor declaration"
		return "", err
	}
	return typ, nil
}

// LookupAll resolves every name in order.
func (t *TypeTable) LookupAll(names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, name := range names {
		typ, err := t.Lookup(name)
		if err != nil {
			return nil, err
		}
		out[i] = typ
	}
	return out, nil
}

// Len returns the number of entries.
func (t *TypeTable) Len() int {
	return len(t.types)
}

// Code returns the stable diagnostic code for a translation error, or ""
// when err carries no known kind.
func Code(err error) string {
	switch {
	case errors.Is(err, ir.ErrMalformedGraph):
		return ErrCodeMalformedGraph
	case errors.Is(err, ir.ErrUnboundValue):
		return ErrCodeUnboundValue
	case errors.Is(err, ir.ErrUnsupportedType):
		return ErrCodeUnsupportedType
	case errors.Is(err, ir.ErrUnsupportedFeature):
		return ErrCodeUnsupportedFeature
	case errors.Is(err, ir.ErrUnknownOperatorKind):
		return ErrCodeUnknownOperatorKind
	default:
		return ""
	}
}
