package array

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbinet/npyio"

	"github.com/roach88/tosa2mlir/internal/ir"
)

// File name markers of a reference test directory.
const (
	InputMarker  = "input-"
	ResultMarker = "result-"
	npyExt       = ".npy"
)

// dtypes maps .npy descr strings to element kinds.
var dtypes = map[string]ir.ElementKind{
	"|b1": ir.ElementBool,
	"|u1": ir.ElementUint8,
	"|i1": ir.ElementInt8,
	"<i2": ir.ElementInt16,
	"<i4": ir.ElementInt32,
	"<f4": ir.ElementFloat32,
}

// Load reads a .npy file. The array is named after the file's base name.
// A dtype without an element kind fails with ir.ErrUnsupportedType.
func Load(path string) (Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return Array{}, fmt.Errorf("open array: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return Array{}, fmt.Errorf("read array %s: %w", path, err)
	}

	name := filepath.Base(path)
	descr := r.Header.Descr
	kind, ok := dtypes[descr.Type]
	if !ok {
		e := ir.NewUnsupportedType(ir.ElementUnknown)
		e.Message = fmt.Sprintf("dtype %q", descr.Type)
		return Array{}, e.ForTensor(name)
	}

	shape := ir.Shape(descr.Shape)
	for _, d := range shape {
		if d < 0 {
			return Array{}, fmt.Errorf("read array %s: negative dimension in %v", path, descr.Shape)
		}
	}

	switch kind {
	case ir.ElementBool:
		var v []bool
		if err := r.Read(&v); err != nil {
			return Array{}, fmt.Errorf("read array %s: %w", path, err)
		}
		return NewBool(name, shape, rowMajor(v, shape, descr.Fortran))
	case ir.ElementFloat32:
		var v []float32
		if err := r.Read(&v); err != nil {
			return Array{}, fmt.Errorf("read array %s: %w", path, err)
		}
		return NewFloat32(name, shape, rowMajor(v, shape, descr.Fortran))
	case ir.ElementUint8:
		return loadInts[uint8](r, name, path, kind, shape, descr.Fortran)
	case ir.ElementInt8:
		return loadInts[int8](r, name, path, kind, shape, descr.Fortran)
	case ir.ElementInt16:
		return loadInts[int16](r, name, path, kind, shape, descr.Fortran)
	default:
		return loadInts[int32](r, name, path, kind, shape, descr.Fortran)
	}
}

type integer interface {
	~uint8 | ~int8 | ~int16 | ~int32
}

func loadInts[T integer](r *npyio.Reader, name, path string, kind ir.ElementKind, shape ir.Shape, fortran bool) (Array, error) {
	var v []T
	if err := r.Read(&v); err != nil {
		return Array{}, fmt.Errorf("read array %s: %w", path, err)
	}
	v = rowMajor(v, shape, fortran)
	ints := make([]int64, len(v))
	for i, x := range v {
		ints[i] = int64(x)
	}
	return NewInt(name, kind, shape, ints)
}

// rowMajor reorders column-major data into row-major order.
func rowMajor[T any](v []T, shape ir.Shape, fortran bool) []T {
	if !fortran || shape.Rank() < 2 || len(v) != shape.NumElements() {
		return v
	}
	out := make([]T, len(v))
	idx := make([]int, shape.Rank())
	for i := range out {
		// idx is the row-major multi-index of i.
		rem := i
		for d := shape.Rank() - 1; d >= 0; d-- {
			idx[d] = rem % shape[d]
			rem /= shape[d]
		}
		col, stride := 0, 1
		for d := 0; d < shape.Rank(); d++ {
			col += idx[d] * stride
			stride *= shape[d]
		}
		out[i] = v[col]
	}
	return out
}

// LoadDir loads the input and result arrays of a test directory. Files
// are matched by the "input-" and "result-" markers and ordered by name.
func LoadDir(dir string) (inputs, results []Array, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read test dir: %w", err)
	}
	// os.ReadDir sorts by file name.
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.Contains(name, npyExt) {
			continue
		}
		isInput := strings.Contains(name, InputMarker)
		isResult := strings.Contains(name, ResultMarker)
		if !isInput && !isResult {
			continue
		}
		a, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, err
		}
		if isInput {
			inputs = append(inputs, a)
		}
		if isResult {
			results = append(results, a)
		}
	}
	return inputs, results, nil
}
