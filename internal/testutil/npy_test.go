package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNPY_HeaderAligned(t *testing.T) {
	for _, a := range []NPY{
		Float32NPY([]int{2, 3}, 1, 2, 3, 4, 5, 6),
		Int32NPY([]int{4}, 1, 2, 3, 4),
		BoolNPY([]int{}, true),
	} {
		b := a.Bytes()
		assert.Equal(t, "\x93NUMPY", string(b[:6]))
		hlen := int(b[8]) | int(b[9])<<8
		assert.Zero(t, (10+hlen)%64, "header must end on a 64-byte boundary")
		assert.Equal(t, byte('\n'), b[10+hlen-1])
	}
}

func TestNPY_ShapeLiteral(t *testing.T) {
	assert.Contains(t, string(Int32NPY([]int{4}, 1, 2, 3, 4).Bytes()), "'shape': (4,)")
	assert.Contains(t, string(BoolNPY(nil, true).Bytes()), "'shape': ()")
}
