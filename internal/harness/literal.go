package harness

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/tosa2mlir/internal/array"
	"github.com/roach88/tosa2mlir/internal/ir"
)

// FormatFloat renders a float32 as the shortest decimal that round-trips,
// always with a '.' in the mantissa: 1 -> "1.0", 1e-05 -> "1.0e-05".
// NaN and infinities render as their IEEE-754 bit pattern, e.g. 0x7FC00000.
func FormatFloat(v float32) string {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return fmt.Sprintf("0x%08X", math.Float32bits(v))
	}
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	mant, exp, hasExp := strings.Cut(s, "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	if hasExp {
		return mant + "e" + exp
	}
	return mant
}

// element renders element i of a.
func element(a array.Array, i int) string {
	switch {
	case a.Kind == ir.ElementBool:
		return strconv.FormatBool(a.Bool(i))
	case a.Kind.IsFloat():
		return FormatFloat(a.Float(i))
	default:
		return strconv.FormatInt(a.Int(i), 10)
	}
}

// Literal renders the values of a as nested, comma-joined brackets
// following its shape. A rank-0 array renders as a bare scalar.
func Literal(a array.Array) string {
	if a.Shape.Rank() == 0 {
		return element(a, 0)
	}
	var sb strings.Builder
	next := 0
	var walk func(dim int)
	walk = func(dim int) {
		sb.WriteByte('[')
		for i := 0; i < a.Shape[dim]; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			if dim == a.Shape.Rank()-1 {
				sb.WriteString(element(a, next))
				next++
			} else {
				walk(dim + 1)
			}
		}
		sb.WriteByte(']')
	}
	walk(0)
	return sb.String()
}
