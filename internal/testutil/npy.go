package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NPY describes a .npy file. Data is written little-endian in the order
// given, so a Fortran-order fixture lists its values column-major.
type NPY struct {
	Descr   string
	Fortran bool
	Shape   []int
	Data    any
}

// Bytes renders the array as a version 1.0 .npy file.
func (a NPY) Bytes() []byte {
	dims := make([]string, len(a.Shape))
	for i, d := range a.Shape {
		dims[i] = fmt.Sprint(d)
	}
	shape := "(" + strings.Join(dims, ", ")
	if len(dims) == 1 {
		shape += ","
	}
	shape += ")"
	fortran := "False"
	if a.Fortran {
		fortran = "True"
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", a.Descr, fortran, shape)

	// magic(6) + version(2) + header length(2), padded to 64 with '\n' last.
	pad := 64 - (10+len(header)+1)%64
	if pad == 64 {
		pad = 0
	}
	header += strings.Repeat(" ", pad) + "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	if err := binary.Write(&buf, binary.LittleEndian, a.Data); err != nil {
		panic(fmt.Sprintf("testutil: npy data: %v", err))
	}
	return buf.Bytes()
}

// WriteNPY writes the array to dir/name and returns the path.
func WriteNPY(t *testing.T, dir, name string, a NPY) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, a.Bytes(), 0o644))
	return path
}

// Float32NPY is a C-order <f4 array.
func Float32NPY(shape []int, data ...float32) NPY {
	return NPY{Descr: "<f4", Shape: shape, Data: data}
}

// Int32NPY is a C-order <i4 array.
func Int32NPY(shape []int, data ...int32) NPY {
	return NPY{Descr: "<i4", Shape: shape, Data: data}
}

// BoolNPY is a C-order |b1 array.
func BoolNPY(shape []int, data ...bool) NPY {
	return NPY{Descr: "|b1", Shape: shape, Data: data}
}
