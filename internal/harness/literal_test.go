package harness

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tosa2mlir/internal/array"
	"github.com/roach88/tosa2mlir/internal/ir"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{-2, "-2.0"},
		{0.5, "0.5"},
		{0.1, "0.1"},
		{1e-05, "1.0e-05"},
		{1e6, "1.0e+06"},
		{2.5e-07, "2.5e-07"},
		{math.MaxFloat32, "3.4028235e+38"},
		{math.Float32frombits(0x7FC00000), "0x7FC00000"},
		{float32(math.Inf(1)), "0x7F800000"},
		{float32(math.Inf(-1)), "0xFF800000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

func TestFormatFloat_RoundTrips(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("parses back to the same bits", prop.ForAll(
		func(v float32) bool {
			s := FormatFloat(v)
			mant, _, _ := strings.Cut(s, "e")
			if !strings.Contains(mant, ".") {
				return false
			}
			back, err := strconv.ParseFloat(s, 32)
			return err == nil && math.Float32bits(float32(back)) == math.Float32bits(v)
		},
		gen.Float32(),
	))

	properties.TestingRun(t)
}

func TestLiteral(t *testing.T) {
	scalar, err := array.NewInt("s", ir.ElementInt8, nil, []int64{-3})
	require.NoError(t, err)
	assert.Equal(t, "-3", Literal(scalar))

	vec, err := array.NewBool("v", ir.Shape{3}, []bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, "[true, false, true]", Literal(vec))

	cube, err := array.NewInt("c", ir.ElementInt16, ir.Shape{2, 1, 2}, []int64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, "[[[1, 2]], [[3, 4]]]", Literal(cube))

	empty, err := array.NewFloat32("e", ir.Shape{2, 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, "[[], []]", Literal(empty))
}

func TestLiteral_NestingMatchesRank(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("leading brackets equal rank", prop.ForAll(
		func(rank int, dims []int) bool {
			shape := ir.Shape(dims[:rank])
			a, err := array.NewInt("x", ir.ElementInt32, shape, make([]int64, shape.NumElements()))
			if err != nil {
				return false
			}
			lit := Literal(a)
			lead := len(lit) - len(strings.TrimLeft(lit, "["))
			return lead == shape.Rank() && strings.Count(lit, "0") == shape.NumElements()
		},
		gen.IntRange(0, 4),
		gen.SliceOfN(4, gen.IntRange(1, 3)),
	))

	properties.TestingRun(t)
}
