// Package array holds literal tensors read from NumPy .npy files.
package array

import (
	"fmt"
	"slices"

	"github.com/roach88/tosa2mlir/internal/ir"
)

// Array is a named literal tensor with row-major values.
//
// Exactly one of the value slices is populated, chosen by Kind: Bools for
// ElementBool, Floats for ElementFloat32, Ints for every integer kind.
type Array struct {
	Name  string
	Kind  ir.ElementKind
	Shape ir.Shape

	bools  []bool
	ints   []int64
	floats []float32
}

// NewBool creates a bool array.
func NewBool(name string, shape ir.Shape, values []bool) (Array, error) {
	a := Array{Name: name, Kind: ir.ElementBool, Shape: slices.Clone(shape), bools: slices.Clone(values)}
	return a, a.checkLen(len(values))
}

// NewInt creates an integer array of the given kind.
func NewInt(name string, kind ir.ElementKind, shape ir.Shape, values []int64) (Array, error) {
	if _, err := kind.Token(); err != nil {
		return Array{}, err
	}
	if kind == ir.ElementBool || kind.IsFloat() {
		return Array{}, fmt.Errorf("array %s: %s is not an integer kind", name, kind)
	}
	a := Array{Name: name, Kind: kind, Shape: slices.Clone(shape), ints: slices.Clone(values)}
	return a, a.checkLen(len(values))
}

// NewFloat32 creates a float32 array.
func NewFloat32(name string, shape ir.Shape, values []float32) (Array, error) {
	a := Array{Name: name, Kind: ir.ElementFloat32, Shape: slices.Clone(shape), floats: slices.Clone(values)}
	return a, a.checkLen(len(values))
}

func (a Array) checkLen(n int) error {
	if want := a.Shape.NumElements(); n != want {
		return fmt.Errorf("array %s: shape %v holds %d elements, got %d", a.Name, []int(a.Shape), want, n)
	}
	return nil
}

// Len returns the number of elements.
func (a Array) Len() int {
	return a.Shape.NumElements()
}

// Type returns the MLIR ranked tensor type.
func (a Array) Type() (string, error) {
	return ir.TensorType(a.Kind, a.Shape)
}

// Bool returns element i of a bool array.
func (a Array) Bool(i int) bool { return a.bools[i] }

// Int returns element i of an integer array.
func (a Array) Int(i int) int64 { return a.ints[i] }

// Float returns element i of a float32 array.
func (a Array) Float(i int) float32 { return a.floats[i] }
