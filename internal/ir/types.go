package ir

import (
	"strconv"
	"strings"
)

// Shape is an ordered list of non-negative dimension sizes.
// A nil or empty shape is rank 0 (a scalar).
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the product of all dimensions (1 for a scalar).
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// String renders the dimensions joined by "x", e.g. "2x3".
func (s Shape) String() string {
	dims := make([]string, len(s))
	for i, d := range s {
		dims[i] = strconv.Itoa(d)
	}
	return strings.Join(dims, "x")
}

// TensorType maps an element kind and shape to an MLIR ranked tensor type:
//
//	TensorType(ElementFloat32, Shape{2, 3}) // "tensor<2x3xf32>"
//	TensorType(ElementBool, nil)            // "tensor<i1>"
//
// The mapping is pure; the only failure is ErrUnsupportedType.
func TensorType(kind ElementKind, shape Shape) (string, error) {
	elem, err := kind.Token()
	if err != nil {
		return "", err
	}
	if shape.Rank() == 0 {
		return "tensor<" + elem + ">", nil
	}
	return "tensor<" + shape.String() + "x" + elem + ">", nil
}

// FlatTensorType returns the rank-1 tensor type holding every element of
// shape, e.g. "tensor<6xf32>" for a 2x3 float tensor.
func FlatTensorType(kind ElementKind, shape Shape) (string, error) {
	return TensorType(kind, Shape{shape.NumElements()})
}

// UnrankedTensorType returns the unranked tensor type of kind, e.g. "tensor<*xf32>".
func UnrankedTensorType(kind ElementKind) (string, error) {
	elem, err := kind.Token()
	if err != nil {
		return "", err
	}
	return "tensor<*x" + elem + ">", nil
}
